package impl

import (
	"context"
	"testing"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (usecase.AdminUsecase, *memUserRepo) {
	t.Helper()

	users := newMemUserRepo()
	svc := NewAdminService(AdminServiceParams{
		UserRepo:   users,
		MenuRepo:   newMemMenuRepo(),
		ReviewRepo: newMemReviewRepo(),
		Logger:     newDiscardLogger(),
	})

	return svc, users
}

func seedUser(t *testing.T, users *memUserRepo, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:  email,
		Phone:  email + "-phone",
		Roles:  entity.Roles{entity.RoleCustomer},
		Status: entity.StatusActive,
	}
	require.NoError(t, users.CreateUser(context.Background(), user))

	return user
}

func TestAdminService_UpdateUserStatus(t *testing.T) {
	svc, users := newAdminFixture(t)
	ctx := context.Background()
	user := seedUser(t, users, "a@example.com")

	updated, err := svc.UpdateUserStatus(ctx, user.ID, entity.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, "blocked", updated.Status)

	_, err = svc.UpdateUserStatus(ctx, user.ID, entity.UserStatus("frozen"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.UpdateUserStatus(ctx, uuid.New(), entity.StatusActive)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAdminService_UpdateUserRoles(t *testing.T) {
	svc, users := newAdminFixture(t)
	ctx := context.Background()
	user := seedUser(t, users, "b@example.com")

	updated, err := svc.UpdateUserRoles(ctx, user.ID, []string{"customer", "admin"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"customer", "admin"}, updated.Roles)

	_, err = svc.UpdateUserRoles(ctx, user.ID, []string{"superuser"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.UpdateUserRoles(ctx, user.ID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_ListAndDashboard(t *testing.T) {
	svc, users := newAdminFixture(t)
	ctx := context.Background()
	seedUser(t, users, "c@example.com")
	seedUser(t, users, "d@example.com")

	list, err := svc.ListUsers(ctx, &usecase.ListUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.TotalUsers)
	assert.Equal(t, int64(0), dash.TotalMenuItems)
}
