package dto

import (
	"errors"
	"regexp"
	"strings"

	"github.com/openblog/blog-api/internal/models"
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate performs syntactic checks only and returns the first failing
// message. Uniqueness and credential checks belong to the handler.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
	if r.Role == "" {
		r.Role = models.RoleUser
	}

	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	if !models.ValidRole(r.Role) {
		return errors.New(`Role must be either "user" or "admin"`)
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate performs syntactic checks only and returns the first failing
// message.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)

	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Status      string      `json:"status"`
	Message     string      `json:"message"`
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
	Timestamp   string      `json:"timestamp"`
}

// RefreshResponse is returned by refresh-token.
type RefreshResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if len(email) > 255 {
		return errors.New("Email must be less than 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if len(password) < 8 || len(password) > 64 {
		return errors.New("Password must be between 8 and 64 characters")
	}
	return nil
}
