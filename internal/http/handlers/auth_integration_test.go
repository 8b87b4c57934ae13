package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openblog/blog-api/internal/auth"
	"github.com/openblog/blog-api/internal/config"
	"github.com/openblog/blog-api/internal/middleware"
	"github.com/openblog/blog-api/internal/storage/postgres"
)

// TestAuthIntegration exercises the full register/login/refresh/logout flow
// against a live Postgres instance.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	_ = godotenv.Overload(".env", "../.env", "../../.env", "../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, dbURL)
	require.NoError(t, err, "init store")
	defer store.Close()

	cfg := config.Config{
		Env:                config.EnvTest,
		AccessTokenSecret:  "integration-access-secret",
		RefreshTokenSecret: "integration-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
	tokens := auth.NewTokenManager(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	log := zap.NewNop()

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(store, tokens, cfg, log).Register(v1.Group("/auth"))
	users := v1.Group("/users")
	users.Use(middleware.RequireAuth(tokens, log))
	NewUserHandler(store, log).Register(users)

	ts := httptest.NewServer(router)
	defer ts.Close()

	email := fmt.Sprintf("apitest_%d@example.com", time.Now().UnixNano())
	password := "integration-pass"

	// Register.
	resp := postJSON(t, ts.URL+"/api/v1/auth/register",
		map[string]string{"email": email, "password": password, "role": "user"}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var registered struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	assert.Equal(t, email, registered.User.Email)
	require.NotEmpty(t, registered.AccessToken)

	refreshCookie := cookieByName(resp.Cookies(), "refreshToken")
	require.NotNil(t, refreshCookie)

	// Login with the same credentials.
	resp = postJSON(t, ts.URL+"/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Refresh using the registration cookie.
	resp = postJSON(t, ts.URL+"/api/v1/auth/refresh-token", nil, refreshCookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout revokes the stored refresh token.
	resp = postJSON(t, ts.URL+"/api/v1/auth/logout", nil, refreshCookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/v1/auth/refresh-token", nil, refreshCookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func postJSON(t *testing.T, url string, payload any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
