package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/persistence/models"
)

func TestServerLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewServerLogRepository(db, testTimeout)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, "L1", &agent.LogEvent{
			ID:      fmt.Sprintf("ev-%d", i),
			Time:    base.Add(time.Duration(i) * time.Minute),
			Message: fmt.Sprintf("line %d", i),
			Meta:    json.RawMessage(`{"n":1}`),
		}))
	}
	require.NoError(t, repo.Insert(ctx, "L2", &agent.LogEvent{ID: "other", Time: base, Message: "x"}))

	list, err := repo.ListRecent(ctx, "L1", 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ev-4", list[0].ID)
	assert.Equal(t, "ev-2", list[2].ID)
	assert.Equal(t, "info", list[0].Level)
	assert.Equal(t, "Server", list[0].Title)
	assert.JSONEq(t, `{"n":1}`, string(list[0].Meta))

	other, err := repo.ListRecent(ctx, "L2", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Nil(t, other[0].Meta)

	empty, err := repo.ListRecent(ctx, "L3", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := repo.DeleteBefore(ctx, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestServerStatusRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewServerStatusRepository(db, testTimeout)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, "L1", agent.LivenessRecord{LastSeenAt: now.Add(-time.Hour), PlayerCount: 1}, true))
	require.NoError(t, repo.Upsert(ctx, "L2", agent.LivenessRecord{LastSeenAt: now.Add(-time.Hour), PlayerCount: 1}, true))
	require.NoError(t, repo.Upsert(ctx, "L2", agent.LivenessRecord{LastSeenAt: now, PlayerCount: 7, Version: "2.0"}, true))

	var row models.ServerStatusModel
	require.NoError(t, db.Where("license_key = ?", "L2").First(&row).Error)
	assert.Equal(t, 7, row.PlayerCount)
	assert.Equal(t, "2.0", row.Version)

	n, err := repo.MarkStaleOffline(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestServerStatusRepository_OlderHeartbeatDoesNotRollBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewServerStatusRepository(db, testTimeout)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, "L1", agent.LivenessRecord{LastSeenAt: now, PlayerCount: 9, Version: "2.1"}, true))
	require.NoError(t, repo.Upsert(ctx, "L1", agent.LivenessRecord{LastSeenAt: now.Add(-5 * time.Second), PlayerCount: 3, Version: "2.0"}, true))

	var row models.ServerStatusModel
	require.NoError(t, db.Where("license_key = ?", "L1").First(&row).Error)
	assert.Equal(t, 9, row.PlayerCount)
	assert.Equal(t, "2.1", row.Version)
	assert.True(t, row.LastSeen.Equal(now))

	require.NoError(t, repo.Upsert(ctx, "L1", agent.LivenessRecord{LastSeenAt: now.Add(time.Second), PlayerCount: 4, Version: "2.1"}, false))
	require.NoError(t, db.Where("license_key = ?", "L1").First(&row).Error)
	assert.Equal(t, 4, row.PlayerCount)
	assert.False(t, row.Online)

	var count int64
	require.NoError(t, db.Model(&models.ServerStatusModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDetectionSettingsRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDetectionSettingsRepository(db, testTimeout)
	ctx := context.Background()

	doc, err := repo.Get(ctx, "L1")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, repo.Upsert(ctx, "L1", json.RawMessage(`{"speedhack":true}`)))
	require.NoError(t, repo.Upsert(ctx, "L1", json.RawMessage(`{"speedhack":false,"noclip":true}`)))

	doc, err = repo.Get(ctx, "L1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"speedhack":false,"noclip":true}`, string(doc))
}
