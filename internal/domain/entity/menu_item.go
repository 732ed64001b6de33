package entity

import (
	"time"

	"github.com/google/uuid"
)

// Nutrient is a single nutritional fact, e.g. {Calories 380 kcal}.
type Nutrient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// MenuItem is a dish on the menu, including its pricing and an optional
// time-windowed discount. Rate and RateCount are aggregates maintained by the
// review subsystem, never written directly by menu operations.
type MenuItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`

	Thumbnail string   `json:"thumbnail"`
	Images    []string `json:"images"`
	Tags      []string `json:"tags"`
	Type      string   `json:"type"`

	IsAvailable bool `json:"isAvailable"`

	PreparationTime string `json:"preparationTime"`
	Portion         string `json:"portion"`

	Ingredients            []string   `json:"ingredients"`
	NutritionalInformation []Nutrient `json:"nutritionalInformation"`

	Rate      float64 `json:"rate"`
	RateCount int     `json:"rateCount"`

	Price           float64    `json:"price"`
	DiscountPrice   *float64   `json:"discountPrice,omitempty"`
	DiscountStartAt *time.Time `json:"discountStartAt,omitempty"`
	DiscountEndAt   *time.Time `json:"discountEndAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiscountActive reports whether a discount price applies at the given time.
// An absent window bound is open-ended on that side.
func (m *MenuItem) DiscountActive(now time.Time) bool {
	if m == nil || m.DiscountPrice == nil || *m.DiscountPrice < 0 {
		return false
	}
	if m.DiscountStartAt != nil && m.DiscountStartAt.After(now) {
		return false
	}
	if m.DiscountEndAt != nil && m.DiscountEndAt.Before(now) {
		return false
	}

	return true
}

// FinalPrice returns the effective price at the given time: the discount
// price inside an active window, the list price otherwise.
func (m *MenuItem) FinalPrice(now time.Time) float64 {
	if m.DiscountActive(now) {
		return *m.DiscountPrice
	}

	return m.Price
}

// Validate enforces the pricing invariants: a discount can never exceed the
// list price, and a discount window must not end before it starts.
func (m *MenuItem) Validate() error {
	if m.DiscountPrice != nil && *m.DiscountPrice > m.Price {
		return ErrDiscountAbovePrice
	}
	if m.DiscountStartAt != nil && m.DiscountEndAt != nil && m.DiscountStartAt.After(*m.DiscountEndAt) {
		return ErrDiscountWindowInverted
	}

	return nil
}
