package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repobrowser/internal/application/service"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions *service.SessionStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions *service.SessionStore) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// Health handles GET /health
// @Summary Health check
// @Description Returns the health status of the service
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Message:  "Service is running",
		Sessions: h.sessions.Len(),
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Sessions int    `json:"sessions"`
}
