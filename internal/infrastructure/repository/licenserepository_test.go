package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/license"
	"warden/internal/shared/logger"
)

func TestLicenseRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepository(db, testTimeout, logger.NewNopLogger())
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &license.License{
		LicenseKey: "WARD-AAAAAAAA-BBBBBBBB",
		Status:     license.StatusActive,
		ExpiresAt:  ptrTime(now.Add(24 * time.Hour)),
		CreatedAt:  now,
	}))

	t.Run("get unknown returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, "WARD-NOPE")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("bind hwid only once", func(t *testing.T) {
		bound, err := repo.BindHWID(ctx, "WARD-AAAAAAAA-BBBBBBBB", "hw-1")
		require.NoError(t, err)
		assert.True(t, bound)

		bound, err = repo.BindHWID(ctx, "WARD-AAAAAAAA-BBBBBBBB", "hw-2")
		require.NoError(t, err)
		assert.False(t, bound)

		bound, err = repo.BindHWID(ctx, "WARD-NOPE", "hw-1")
		require.NoError(t, err)
		assert.False(t, bound)

		got, err := repo.Get(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "hw-1", got.BoundHWID())
	})

	t.Run("touch last seen", func(t *testing.T) {
		require.NoError(t, repo.TouchLastSeen(ctx, "WARD-AAAAAAAA-BBBBBBBB", now))
		got, err := repo.Get(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		require.NotNil(t, got.LastSeen)
		assert.True(t, now.Equal(*got.LastSeen))
	})

	t.Run("set status accepts free text", func(t *testing.T) {
		ok, err := repo.SetStatus(ctx, "WARD-AAAAAAAA-BBBBBBBB", "CHARGEBACK")
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.Get(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		assert.Equal(t, "CHARGEBACK", got.Status)

		ok, err = repo.SetStatus(ctx, "WARD-NOPE", "ACTIVE")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("clear expiry and delete", func(t *testing.T) {
		ok, err := repo.SetExpiry(ctx, "WARD-AAAAAAAA-BBBBBBBB", nil)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.Get(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		assert.True(t, got.IsPermanent())

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		ok, err = repo.Delete(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		assert.True(t, ok)

		got, err = repo.Get(ctx, "WARD-AAAAAAAA-BBBBBBBB")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
