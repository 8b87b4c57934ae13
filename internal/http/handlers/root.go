package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblog/blog-api/internal/http/respond"
)

// APIVersion is reported by the versioned root endpoint.
const APIVersion = "1.0.0"

// RootHandler answers the API root with liveness info.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "API is running",
		"version":   APIVersion,
		"timestamp": respond.Now(),
	})
}
