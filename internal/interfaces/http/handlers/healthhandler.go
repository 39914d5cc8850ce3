package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// OnlineCounter reports how many agents are currently online.
type OnlineCounter interface {
	OnlineCount() int
}

type HealthHandler struct {
	db     Pinger
	online OnlineCounter
}

func NewHealthHandler(db Pinger, online OnlineCounter) *HealthHandler {
	return &HealthHandler{db: db, online: online}
}

// Health reports 503 when the record store does not answer.
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"service": "warden",
	}
	if h.online != nil {
		body["agents_online"] = h.online.OnlineCount()
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "ok"
	}

	c.JSON(http.StatusOK, body)
}
