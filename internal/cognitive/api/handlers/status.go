package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

var startedAt = time.Now()

// StatusHandler handles health endpoint requests
type StatusHandler struct {
	logger logging.Logger
}

func NewStatusHandler(logger logging.Logger) *StatusHandler {
	return &StatusHandler{
		logger: logger,
	}
}

func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "cognitive-engine",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startedAt).String(),
	})
}

func getTraceID(c *gin.Context) string {
	traceID, exists := c.Get("trace_id")
	if !exists {
		return ""
	}
	if s, ok := traceID.(string); ok {
		return s
	}
	return ""
}
