package usecase

import (
	"context"
	"time"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// MenuItemView is a menu item decorated with the derived pricing fields the
// API exposes alongside the stored ones.
type MenuItemView struct {
	*entity.MenuItem
	FinalPrice       float64 `json:"finalPrice"`
	IsDiscountActive bool    `json:"isDiscountActive"`
}

// NewMenuItemView computes the derived fields at the given time.
func NewMenuItemView(item *entity.MenuItem, now time.Time) *MenuItemView {
	return &MenuItemView{
		MenuItem:         item,
		FinalPrice:       item.FinalPrice(now),
		IsDiscountActive: item.DiscountActive(now),
	}
}

// ListMenuInput narrows a menu listing.
type ListMenuInput struct {
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

// ListMenuOutput is one page of menu items plus the total match count.
type ListMenuOutput struct {
	Items []*MenuItemView
	Total int64
	Page  int
	Limit int
}

// SaveMenuItemInput defines the writable fields of a menu item.
type SaveMenuItemInput struct {
	Name            string
	Description     string
	Category        string
	Thumbnail       string
	Images          []string
	Tags            []string
	Type            string
	IsAvailable     bool
	PreparationTime string
	Portion         string
	Ingredients     []string
	Nutrients       []entity.Nutrient
	Price           float64
	DiscountPrice   *float64
	DiscountStartAt *time.Time
	DiscountEndAt   *time.Time
}

// MenuUsecase defines the interface for menu catalogue operations.
type MenuUsecase interface {
	// ListMenuItems returns a filtered page of the catalogue.
	ListMenuItems(ctx context.Context, input *ListMenuInput) (*ListMenuOutput, error)

	// GetMenuItem returns a single item with derived pricing.
	GetMenuItem(ctx context.Context, id uuid.UUID) (*MenuItemView, error)

	// CreateMenuItem adds a dish to the catalogue. Admin only.
	CreateMenuItem(ctx context.Context, input *SaveMenuItemInput) (*MenuItemView, error)

	// UpdateMenuItem replaces the writable fields of a dish. Admin only.
	UpdateMenuItem(ctx context.Context, id uuid.UUID, input *SaveMenuItemInput) (*MenuItemView, error)

	// DeleteMenuItem removes a dish. Admin only.
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}
