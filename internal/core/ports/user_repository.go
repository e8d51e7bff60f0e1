package ports

import (
	"context"

	"github.com/squartrbnb/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Lookups return an error wrapping domain.ErrRecordNotFound when nothing matches;
// writes rejected by a unique index return a *domain.DuplicateKeyError.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindAll returns every user in the store's native order.
	FindAll(ctx context.Context) ([]*domain.User, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save inserts the user when ID is zero and replaces it otherwise.
	// The returned user carries the store-assigned ID.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RoleRepository resolves roles provisioned out of band.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}
