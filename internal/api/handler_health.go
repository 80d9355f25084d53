package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Live handles GET /health/live.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. The database must be reachable; redis is
// checked only when configured.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	overall := "healthy"
	checks := gin.H{}

	if h.store != nil {
		checks["database"] = check(ctx, h.store)
	} else {
		checks["database"] = gin.H{"status": "disabled"}
	}
	if h.redis != nil {
		checks["redis"] = check(ctx, h.redis)
	} else {
		checks["redis"] = gin.H{"status": "disabled"}
	}
	for _, v := range checks {
		if v.(gin.H)["status"] == "down" {
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":         overall,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func check(ctx context.Context, p Pinger) gin.H {
	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return gin.H{"status": "down", "latency_ms": latency, "error": "connection failed"}
	}
	return gin.H{"status": "up", "latency_ms": latency}
}
