package agent

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessRecordOnlineWindow(t *testing.T) {
	seen := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := &LivenessRecord{LastSeenAt: seen, PlayerCount: 3, UptimeSeconds: 120, Version: "1.2.0"}

	assert.True(t, rec.IsOnline(seen))
	assert.True(t, rec.IsOnline(seen.Add(29*time.Second)))
	assert.False(t, rec.IsOnline(seen.Add(30*time.Second)))
	assert.False(t, rec.IsOnline(seen.Add(time.Hour)))

	st := rec.StatusAt(seen.Add(5 * time.Second))
	assert.True(t, st.Online)
	assert.Equal(t, 3, st.Players)
	assert.Equal(t, int64(120), st.Uptime)
	require.NotNil(t, st.LastSeen)
	assert.Equal(t, seen, *st.LastSeen)
}

func TestNilRecordIsOffline(t *testing.T) {
	var rec *LivenessRecord
	assert.False(t, rec.IsOnline(time.Now()))
	assert.Equal(t, Status{}, rec.StatusAt(time.Now()))
}

func TestPlayerIDAcceptsNumbers(t *testing.T) {
	var players []Player
	err := json.Unmarshal([]byte(`[{"id":7,"name":"a","ping":40},{"id":"12","name":"b","ping":0,"identifiers":["steam:1"]}]`), &players)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, PlayerID("7"), players[0].ID)
	assert.Equal(t, PlayerID("12"), players[1].ID)
	assert.Equal(t, []string{"steam:1"}, players[1].Identifiers)

	err = json.Unmarshal([]byte(`{"id":{}}`), &Player{})
	assert.Error(t, err)
}

func TestLogEventDefaults(t *testing.T) {
	e := &LogEvent{Message: "started"}
	e.ApplyDefaults()
	assert.Equal(t, "info", e.Level)
	assert.Equal(t, "log", e.Type)
	assert.Equal(t, "Server", e.Title)

	e = &LogEvent{Level: "error", Type: "anticheat", Title: "AC", Message: "x"}
	e.ApplyDefaults()
	assert.Equal(t, "error", e.Level)
	assert.Equal(t, "AC", e.Title)
}
