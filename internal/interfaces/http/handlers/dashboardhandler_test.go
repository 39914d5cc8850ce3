package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptest "warden/internal/application/testutil"
	"warden/internal/domain/agent"
	"warden/internal/interfaces/http/handlers/testutil"
)

func TestDashboardHandler_ActionQueuesForTokenTenant(t *testing.T) {
	f := newFixture(t, false)
	f.addTenant("WARD-A", "owner-a")
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/dashboard/action",
		map[string]interface{}{"type": "kick", "payload": map[string]string{"player_id": "7"}})
	testutil.SetBearer(c, "owner-a")
	h.Action(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmd agent.Command
	decodeData(t, parse(t, w), &cmd)
	assert.Equal(t, "kick", cmd.Type)
	assert.JSONEq(t, `{"player_id":"7"}`, string(cmd.Payload))
	assert.Equal(t, 1, f.queue.Len("WARD-A"))
}

func TestDashboardHandler_ActionTokenInBody(t *testing.T) {
	f := newFixture(t, false)
	f.addTenant("WARD-A", "owner-a")
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/dashboard/action",
		map[string]string{"token": "owner-a", "type": "restart"})
	h.Action(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.queue.Len("WARD-A"))
}

func TestDashboardHandler_ActionRejectsUnknownToken(t *testing.T) {
	f := newFixture(t, false)
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/dashboard/action", map[string]string{"type": "kick"})
	testutil.SetBearer(c, "nobody")
	h.Action(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", parse(t, w).Error)
}

func TestDashboardHandler_Settings(t *testing.T) {
	f := newFixture(t, false)
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bare document", `{"aimbot":{"enabled":true}}`, `{"aimbot":{"enabled":true}}`},
		{"wrapped document", `{"settings":{"noclip":{"enabled":false}}}`, `{"noclip":{"enabled":false}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPut, "/api/dashboard/settings", tt.body)
			testutil.SetIdentity(c, "owner-a", owner("WARD-A"))
			h.PutSettings(c)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			c, w = testutil.NewTestContext(http.MethodGet, "/api/dashboard/settings", nil)
			testutil.SetIdentity(c, "owner-a", owner("WARD-A"))
			h.GetSettings(c)
			assert.JSONEq(t, tt.want, string(parse(t, w).Data))
		})
	}
}

func TestDashboardHandler_SettingsRejectsNonObject(t *testing.T) {
	f := newFixture(t, false)
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/dashboard/settings", `[1,2,3]`)
	testutil.SetIdentity(c, "owner-a", owner("WARD-A"))
	h.PutSettings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FIELDS", parse(t, w).Error)
}

func TestDashboardHandler_SettingsWithoutIdentity(t *testing.T) {
	f := newFixture(t, false)
	h := NewDashboardHandler(f.queue, f.settings, apptest.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/dashboard/settings", nil)
	h.GetSettings(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
