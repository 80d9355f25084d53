package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"livecounter-backend/internal/model"
)

// GetEndpoints handles GET /api/endpoints.
func GetEndpoints(c *gin.Context) {
	c.JSON(http.StatusOK, model.Endpoints())
}
