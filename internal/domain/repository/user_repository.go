// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the email or phone is already taken.
	ErrDuplicateUser = errors.New("email or phone already taken")
)

// UserListFilter narrows and paginates admin user listings.
type UserListFilter struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}

// UserRepository defines the interface for user management operations.
type UserRepository interface {
	// CreateUser persists a new user. Returns ErrDuplicateUser when the email
	// or phone collides with an existing account.
	CreateUser(ctx context.Context, user *entity.User) error

	// FindUserByID retrieves a user by its unique ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindUserByIdentifier retrieves a user whose email or phone matches the
	// given identifier. Used by login, where either field is accepted.
	FindUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// ExistsByEmailOrPhone reports whether any user already holds the email or
	// the phone. Registration uses this for its combined duplicate check.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)

	// ListUsers returns a filtered page of users and the total match count.
	ListUsers(ctx context.Context, filter UserListFilter) ([]*entity.User, int64, error)

	// UpdateUser persists profile changes to an existing user.
	UpdateUser(ctx context.Context, user *entity.User) error

	// UpdateUserStatus sets the account status for a user.
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error

	// UpdateUserRoles replaces the role set for a user.
	UpdateUserRoles(ctx context.Context, id uuid.UUID, roles entity.Roles) error

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)
}
