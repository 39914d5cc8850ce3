package handlers

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptest "warden/internal/application/testutil"
	"warden/internal/domain/agent"
	"warden/internal/interfaces/dto"
	"warden/internal/interfaces/http/handlers/testutil"
)

func createBan(t *testing.T, h *BanHandler, body map[string]interface{}) dto.BanResponse {
	t.Helper()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/server/ban", body)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b dto.BanResponse
	decodeData(t, parse(t, w), &b)
	return b
}

func TestBanHandler_CreateAndCheck(t *testing.T) {
	f := newFixture(t, false)
	h := NewBanHandler(f.bans, apptest.NewMockLogger())

	b := createBan(t, h, map[string]interface{}{
		"license_key": "WARD-A",
		"player_id":   "7",
		"reason":      "speedhack",
		"duration":    "permanent",
		"identifiers": []string{"steam:11", "license:abc"},
	})
	assert.NotEmpty(t, b.BanID)
	assert.True(t, b.Active)
	assert.Nil(t, b.ExpiresAt)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/server/check-ban",
		`{"license_key":"WARD-A","identifiers":["license:abc"]}`)
	h.Check(c)
	require.Equal(t, http.StatusOK, w.Code)

	var res dto.CheckBanResponse
	decodeData(t, parse(t, w), &res)
	assert.True(t, res.Banned)
	require.NotNil(t, res.Ban)
	assert.Equal(t, b.BanID, res.Ban.BanID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/server/check-ban",
		`{"license_key":"WARD-B","identifiers":["license:abc"]}`)
	h.Check(c)
	assert.JSONEq(t, `{"banned":false}`, string(parse(t, w).Data))
}

func TestBanHandler_CreateKeepsReportedFields(t *testing.T) {
	f := newFixture(t, false)
	h := NewBanHandler(f.bans, apptest.NewMockLogger())

	b := createBan(t, h, map[string]interface{}{
		"license_key":  "WARD-A",
		"player_id":    "9",
		"created_at":   "2025-12-31T23:00:00Z",
		"evidence_url": "https://cdn.example.com/9.jpg",
	})
	assert.Equal(t, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), b.CreatedAt.UTC())
	require.NotNil(t, b.EvidenceURL)
	assert.Equal(t, "https://cdn.example.com/9.jpg", *b.EvidenceURL)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/server/bans/WARD-A", nil)
	testutil.SetURLParam(c, "license", "WARD-A")
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var list []dto.BanResponse
	decodeData(t, parse(t, w), &list)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EvidenceURL)
	assert.Equal(t, "https://cdn.example.com/9.jpg", *list[0].EvidenceURL)
}

func TestBanHandler_CheckRejectsNonArrayIdentifiers(t *testing.T) {
	f := newFixture(t, false)
	h := NewBanHandler(f.bans, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/server/check-ban",
		`{"license_key":"WARD-A","identifiers":"steam:11"}`)
	h.Check(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IDENTIFIERS", parse(t, w).Error)
}

func TestBanHandler_Evidence(t *testing.T) {
	f := newFixture(t, false)
	h := NewBanHandler(f.bans, apptest.NewMockLogger())
	b := createBan(t, h, map[string]interface{}{"license_key": "WARD-A", "player_id": "7"})

	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG fake"))
	c, w := testutil.NewTestContext(http.MethodPost, "/api/server/ban/evidence",
		map[string]string{"license_key": "WARD-A", "ban_id": b.BanID, "image": image})
	h.Evidence(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out map[string]string
	decodeData(t, parse(t, w), &out)
	assert.NotEmpty(t, out["evidence_url"])
	assert.Len(t, f.blobs.Objects(), 1)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/server/ban/evidence",
		map[string]string{"license_key": "WARD-A", "ban_id": b.BanID, "image": "not a data uri"})
	h.Evidence(c)
	assert.Equal(t, "INVALID_IMAGE_DATA", parse(t, w).Error)
}

func TestBanHandler_UnbanEnforcesTenant(t *testing.T) {
	f := newFixture(t, false)
	f.addTenant("WARD-A", "owner-a")
	f.addTenant("WARD-B", "owner-b")
	h := NewBanHandler(f.bans, apptest.NewMockLogger())
	b := createBan(t, h, map[string]interface{}{"license_key": "WARD-A", "player_id": "7", "identifiers": []string{"steam:11"}})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/server/unban/"+b.BanID, nil)
	testutil.SetURLParam(c, "banId", b.BanID)
	testutil.SetBearer(c, "owner-b")
	h.Unban(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, f.queue.Len("WARD-A"))

	c, w = testutil.NewTestContext(http.MethodDelete, "/api/server/unban/"+b.BanID, nil)
	testutil.SetURLParam(c, "banId", b.BanID)
	testutil.SetBearer(c, "owner-a")
	h.Unban(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var lifted dto.BanResponse
	decodeData(t, parse(t, w), &lifted)
	assert.False(t, lifted.Active)

	cmds := f.queue.Drain("WARD-A")
	require.Len(t, cmds, 1)
	assert.Equal(t, agent.CommandUnban, cmds[0].Type)
}

func TestBanHandler_UnbanUnknownBan(t *testing.T) {
	f := newFixture(t, false)
	f.addTenant("WARD-A", "owner-a")
	h := NewBanHandler(f.bans, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/server/unban/missing", nil)
	testutil.SetURLParam(c, "banId", "missing")
	testutil.SetBearer(c, "owner-a")
	h.Unban(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBanHandler_LegacyUnban(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, false)
		h := NewBanHandler(f.bans, apptest.NewMockLogger())
		b := createBan(t, h, map[string]interface{}{"license_key": "WARD-A", "player_id": "7"})

		c, w := testutil.NewTestContext(http.MethodDelete, "/api/server/ban/"+b.BanID, nil)
		testutil.SetURLParam(c, "banId", b.BanID)
		h.LegacyUnban(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 0, f.queue.Len("WARD-A"))
	})

	t.Run("enabled", func(t *testing.T) {
		f := newFixture(t, true)
		h := NewBanHandler(f.bans, apptest.NewMockLogger())
		b := createBan(t, h, map[string]interface{}{"license_key": "WARD-A", "player_id": "7"})

		c, w := testutil.NewTestContext(http.MethodDelete, "/api/server/ban/"+b.BanID, nil)
		testutil.SetURLParam(c, "banId", b.BanID)
		h.LegacyUnban(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Deprecation"))
		assert.Equal(t, 1, f.queue.Len("WARD-A"))
	})
}
