package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomeHandler serves liveness endpoints.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home responds with a simple service banner.
func (h *HomeHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "personal banking backend is up"})
}

// Health responds 200 when the process is serving.
func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
