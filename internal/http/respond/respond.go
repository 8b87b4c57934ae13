package respond

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard error/status body used across handlers.
type Envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error writes an error body with the shared envelope structure.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Status:    "error",
		Message:   message,
		Timestamp: Now(),
	})
}

// AbortError writes an error body and stops the middleware chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Status:    "error",
		Message:   message,
		Timestamp: Now(),
	})
}

// Now formats the current time the way response bodies carry timestamps.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
