package repositories

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces a user's password hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// UserRepositoryFacade combines user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
