package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"warden/internal/interfaces/http/handlers/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type onlineCount int

func (n onlineCount) OnlineCount() int { return int(n) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantBody   string
	}{
		{"database up", pingFunc(func(context.Context) error { return nil }), http.StatusOK, `{"status":"ok","service":"warden","agents_online":3,"database":"ok"}`},
		{"database down", pingFunc(func(context.Context) error { return stderrors.New("dial tcp") }), http.StatusServiceUnavailable, `{"status":"degraded","service":"warden","agents_online":3,"database":"unreachable"}`},
		{"no database", nil, http.StatusOK, `{"status":"ok","service":"warden","agents_online":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, onlineCount(3))
			c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
