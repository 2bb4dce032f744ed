package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type StatusHandler struct {
	requiredConfirmations uint32
}

func NewStatusHandler(requiredConfirmations uint32) *StatusHandler {
	return &StatusHandler{requiredConfirmations: requiredConfirmations}
}

func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                 "healthy",
		"service":                "consensus-engine",
		"required_confirmations": h.requiredConfirmations,
		"timestamp":              time.Now().UTC(),
		"uptime":                 time.Since(startedAt).String(),
	})
}
