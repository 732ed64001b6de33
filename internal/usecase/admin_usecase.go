package usecase

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput narrows and paginates an admin user listing.
type ListUsersInput struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}

// ListUsersOutput is one page of users plus the total match count.
type ListUsersOutput struct {
	Users []*entity.PublicUser
	Total int64
	Page  int
	Limit int
}

// DashboardOutput aggregates platform-wide figures for the admin overview.
type DashboardOutput struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalMenuItems  int64   `json:"totalMenuItems"`
	TotalReviews    int64   `json:"totalReviews"`
	AverageRating   float64 `json:"averageRating"`
	DiscountedItems int64   `json:"discountedItems"`
}

// AdminUsecase defines the interface for administrative operations.
type AdminUsecase interface {
	// ListUsers returns a filtered page of accounts.
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)

	// UpdateUserStatus activates or blocks an account.
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.PublicUser, error)

	// UpdateUserRoles replaces an account's role set.
	UpdateUserRoles(ctx context.Context, id uuid.UUID, roles []string) (*entity.PublicUser, error)

	// Dashboard returns platform-wide counts.
	Dashboard(ctx context.Context) (*DashboardOutput, error)
}
