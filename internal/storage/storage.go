package storage

import (
	"context"
	"errors"

	"github.com/openblog/blog-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// RefreshTokenStore persists issued refresh tokens so they can be revoked
// and audited.
type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, token models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Store combines all persistence concerns backed by one database.
type Store interface {
	UserStore
	RefreshTokenStore
}
