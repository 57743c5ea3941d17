package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the email unique constraint is violated.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

// TokenRepository stores auth tokens, one per user.
type TokenRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.AuthToken, error)
	Create(ctx context.Context, t *entity.AuthToken) error
	DeleteByUserID(ctx context.Context, userID string) error
}
