package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openblog/blog-api/internal/http/respond"
	"github.com/openblog/blog-api/internal/middleware"
	"github.com/openblog/blog-api/internal/storage"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	users storage.UserStore
	log   *zap.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users storage.UserStore, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Register attaches user routes to an already-authenticated router group.
func (h *UserHandler) Register(r *gin.RouterGroup) {
	r.GET("/me", h.handleMe)
}

func (h *UserHandler) handleMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("user lookup failed", zap.String("userId", userID), zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}
