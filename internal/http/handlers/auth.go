package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blog-api/internal/auth"
	"github.com/openblog/blog-api/internal/config"
	"github.com/openblog/blog-api/internal/http/respond"
	"github.com/openblog/blog-api/internal/models"
	"github.com/openblog/blog-api/internal/models/dto"
	"github.com/openblog/blog-api/internal/storage"
)

const refreshCookieName = "refreshToken"

// AuthHandler owns the register/login/refresh-token/logout endpoints.
type AuthHandler struct {
	store  storage.Store
	tokens *auth.TokenManager
	cfg    config.Config
	log    *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.Store, tokens *auth.TokenManager, cfg config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cfg: cfg, log: log}
}

// Register attaches auth routes to the router group.
func (h *AuthHandler) Register(r *gin.RouterGroup) {
	r.POST("/register", h.handleRegister)
	r.POST("/login", h.handleLogin)
	r.POST("/refresh-token", h.handleRefreshToken)
	r.POST("/logout", h.handleLogout)
}

func (h *AuthHandler) handleRegister(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Role == models.RoleAdmin && !h.cfg.EmailWhitelisted(req.Email) {
		h.log.Warn("unauthorized admin registration attempt", zap.String("email", req.Email))
		respond.Error(c, http.StatusForbidden, "Unauthorized to register as admin")
		return
	}

	if _, err := h.store.FindByEmail(c.Request.Context(), req.Email); err == nil {
		respond.Error(c, http.StatusBadRequest, "Email already in use")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.log.Error("email lookup failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		h.log.Error("hash password failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     genUsername(),
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(c, http.StatusBadRequest, "Email already in use")
			return
		}
		h.log.Error("create user failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(c, created.ID)
	if err != nil {
		// The user row exists without a refresh-token record; roll it back
		// so registration stays all-or-nothing.
		if delErr := h.store.DeleteUser(c.Request.Context(), created.ID); delErr != nil {
			h.log.Error("compensating user delete failed", zap.String("userId", created.ID), zap.Error(delErr))
		}
		h.log.Error("issue tokens failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Status:      "ok",
		Message:     "User Registered Successfully",
		User:        created,
		AccessToken: accessToken,
		Timestamp:   respond.Now(),
	})

	h.log.Info("user registered",
		zap.String("userId", created.ID),
		zap.String("email", created.Email),
		zap.String("username", created.Username),
		zap.String("role", created.Role),
	)
}

func (h *AuthHandler) handleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.log.Warn("login attempt with non-existing email", zap.String("email", req.Email))
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("email lookup failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(c, user.ID)
	if err != nil {
		h.log.Error("issue tokens failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Status:      "success",
		Message:     "Login successful",
		User:        user,
		AccessToken: accessToken,
		Timestamp:   respond.Now(),
	})

	h.log.Info("user logged in",
		zap.String("userId", user.ID),
		zap.String("email", user.Email),
	)
}

func (h *AuthHandler) handleRefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || strings.TrimSpace(refreshToken) == "" {
		h.log.Warn("refresh token not provided")
		respond.Error(c, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	claims, err := h.tokens.Verify(auth.RefreshToken, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			h.log.Warn("refresh attempt with expired token")
			respond.Error(c, http.StatusForbidden, "Refresh token expired, please login again")
			return
		}
		h.log.Warn("refresh attempt with invalid token")
		respond.Error(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// A record must still exist for the token; logout removes it, which
	// revokes the token even while its signature remains valid.
	if _, err := h.store.FindRefreshToken(c.Request.Context(), refreshToken); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.log.Warn("refresh attempt with revoked token", zap.String("userId", claims.UserID))
			respond.Error(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		h.log.Error("refresh token lookup failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	accessToken, err := h.tokens.Issue(auth.AccessToken, claims.UserID)
	if err != nil {
		h.log.Error("issue access token failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Status:      "success",
		Message:     "Access token refreshed successfully",
		AccessToken: accessToken,
	})

	h.log.Info("access token refreshed", zap.String("userId", claims.UserID))
}

func (h *AuthHandler) handleLogout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookieName); err == nil && refreshToken != "" {
		if err := h.store.DeleteRefreshToken(c.Request.Context(), refreshToken); err != nil && !errors.Is(err, storage.ErrNotFound) {
			h.log.Error("delete refresh token failed", zap.Error(err))
			respond.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		h.clearRefreshCookie(c)
	}
	c.Status(http.StatusNoContent)
}

// issueTokenPair mints both tokens for the user and persists the refresh
// token record.
func (h *AuthHandler) issueTokenPair(c *gin.Context, userID string) (accessToken, refreshToken string, err error) {
	accessToken, err = h.tokens.Issue(auth.AccessToken, userID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = h.tokens.Issue(auth.RefreshToken, userID)
	if err != nil {
		return "", "", err
	}
	err = h.store.CreateRefreshToken(c.Request.Context(), models.RefreshToken{
		Token:  refreshToken,
		UserID: userID,
	})
	if err != nil {
		return "", "", err
	}
	h.log.Info("refresh token created", zap.String("userId", userID))
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, value, int(h.tokens.RefreshTTL().Seconds()), "/", "", h.cfg.IsProduction(), true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cfg.IsProduction(), true)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// genUsername produces a random username within the 3-20 character bounds.
func genUsername() string {
	return "user-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
