package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"livecounter-backend/internal/store"
)

// GetRecentLookups handles GET /api/lookups/recent?limit=N.
func (h *Handler) GetRecentLookups(c *gin.Context) {
	limit := store.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	lookups, err := h.store.RecentLookups(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch recent lookups")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lookups"})
		return
	}
	c.JSON(http.StatusOK, lookups)
}

// GetLookupStats handles GET /api/lookups/stats.
func (h *Handler) GetLookupStats(c *gin.Context) {
	stats, err := h.store.LookupStats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to aggregate lookups")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lookup stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
