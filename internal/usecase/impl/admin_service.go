package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bistro/internal/delivery/context"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo   repository.UserRepository
	menuRepo   repository.MenuItemRepository
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	MenuRepo   repository.MenuItemRepository
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:   params.UserRepo,
		menuRepo:   params.MenuRepo,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns a filtered page of accounts.
func (srv *adminService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	users, total, err := srv.userRepo.ListUsers(ctx, repository.UserListFilter{
		Role:   input.Role,
		Status: input.Status,
		Search: input.Search,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users")
	}

	publics := make([]*entity.PublicUser, 0, len(users))
	for _, user := range users {
		publics = append(publics, user.Public())
	}

	return &usecase.ListUsersOutput{
		Users: publics,
		Total: total,
		Page:  input.Page,
		Limit: input.Limit,
	}, nil
}

// UpdateUserStatus activates or blocks an account.
func (srv *adminService) UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.PublicUser, error) {
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("unknown status"), "status update rejected")
	}

	if err := srv.userRepo.UpdateUserStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "status update failed")
		}
		srv.log(ctx).Error("Failed to update user status", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user status")
	}

	user, err := srv.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user after status update")
	}

	srv.log(ctx).Info("User status updated", slog.Any("userID", id), slog.String("status", string(status)))

	return user.Public(), nil
}

// UpdateUserRoles replaces an account's role set.
func (srv *adminService) UpdateUserRoles(ctx context.Context, id uuid.UUID, roles []string) (*entity.PublicUser, error) {
	parsed := make(entity.Roles, 0, len(roles))
	for _, raw := range roles {
		role := entity.Role(raw)
		if !role.IsValid() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("unknown role: "+raw), "role update rejected")
		}
		parsed = append(parsed, role)
	}
	if len(parsed) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("at least one role is required"), "role update rejected")
	}

	if err := srv.userRepo.UpdateUserRoles(ctx, id, parsed); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "role update failed")
		}
		srv.log(ctx).Error("Failed to update user roles", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user roles")
	}

	user, err := srv.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user after role update")
	}

	srv.log(ctx).Info("User roles updated", slog.Any("userID", id), slog.Any("roles", roles))

	return user.Public(), nil
}

// Dashboard returns platform-wide counts.
func (srv *adminService) Dashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	users, err := srv.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	items, err := srv.menuRepo.CountMenuItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count menu items")
	}

	reviews, err := srv.reviewRepo.CountReviews(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	stats, err := srv.menuRepo.MenuItemStats(ctx, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize menu items")
	}

	return &usecase.DashboardOutput{
		TotalUsers:      users,
		TotalMenuItems:  items,
		TotalReviews:    reviews,
		AverageRating:   stats.AverageRating,
		DiscountedItems: stats.DiscountedCount,
	}, nil
}
