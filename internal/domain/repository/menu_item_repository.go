package repository

import (
	"context"
	"time"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrMenuItemNotFound is returned when a menu item is not found.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemFilter narrows and paginates menu listings. Search matches name,
// description and tags. ActiveDiscount keeps only items whose discount
// window covers the query time.
type MenuItemFilter struct {
	Category       string
	Type           string
	Search         string
	AvailableOnly  bool
	ActiveDiscount bool
	MinPrice       *float64
	MaxPrice       *float64
	Page           int
	Limit          int
}

// MenuStats aggregates catalogue-wide figures for reporting.
type MenuStats struct {
	AverageRating   float64
	DiscountedCount int64
}

// MenuItemRepository defines the interface for menu catalogue operations.
type MenuItemRepository interface {
	// CreateMenuItem persists a new menu item.
	CreateMenuItem(ctx context.Context, item *entity.MenuItem) error

	// FindMenuItemByID retrieves a menu item by its unique ID.
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// ListMenuItems returns a filtered page of menu items and the total match count.
	ListMenuItems(ctx context.Context, filter MenuItemFilter) ([]*entity.MenuItem, int64, error)

	// UpdateMenuItem persists changes to an existing menu item.
	UpdateMenuItem(ctx context.Context, item *entity.MenuItem) error

	// UpdateMenuItemRating stores a recomputed rating aggregate.
	UpdateMenuItemRating(ctx context.Context, id uuid.UUID, summary entity.RatingSummary) error

	// DeleteMenuItem removes a menu item by its ID.
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	// CountMenuItems returns the total number of menu items.
	CountMenuItems(ctx context.Context) (int64, error)

	// MenuItemStats returns the platform average rating over rated items and
	// the number of items whose discount window covers the given time.
	MenuItemStats(ctx context.Context, now time.Time) (MenuStats, error)
}
