package ports

import (
	"context"
	"time"
)

// CreateUserInput carries everything needed to create a user account.
type CreateUserInput struct {
	Username  string
	LastName  string
	FirstName string
	Email     string
	BirthDate time.Time
	PhotoPath *string
	Password  string
	RoleID    Optional[int64]
}

// UpdateUserInput is a partial update. Absent fields are left unchanged.
type UpdateUserInput struct {
	Username  Optional[string]
	LastName  Optional[string]
	FirstName Optional[string]
	Email     Optional[string]
	BirthDate Optional[time.Time]
	PhotoPath Optional[string]
	// Password is re-hashed only when present and non-empty.
	Password Optional[string]
	RoleID   Optional[int64]
}

// RoleView is the minimal role embedded in a UserView.
type RoleView struct {
	ID   int64
	Name string
}

// UserView is the outward-safe projection of a user. It never carries the
// password hash or remember token.
type UserView struct {
	ID        int64
	Username  string
	LastName  string
	FirstName string
	Email     string
	BirthDate time.Time
	PhotoPath *string
	Role      *RoleView
}

// UserService defines the user-management use cases.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*UserView, error)
	GetByEmail(ctx context.Context, email string) (*UserView, error)
	GetByUsername(ctx context.Context, username string) (*UserView, error)
	List(ctx context.Context) ([]UserView, error)
	Create(ctx context.Context, input CreateUserInput) (*UserView, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
