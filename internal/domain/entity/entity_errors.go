package entity

import "github.com/pkg/errors"

// Validation errors raised by entity invariants. The usecase layer maps these
// onto the API-facing validation error.
var (
	// ErrDiscountAbovePrice is returned when a discount price exceeds the list price.
	ErrDiscountAbovePrice = errors.New("discount price must not exceed price")
	// ErrDiscountWindowInverted is returned when a discount window ends before it starts.
	ErrDiscountWindowInverted = errors.New("discount window must start before it ends")
	// ErrRatingOutOfRange is returned when a review rating falls outside 0..5.
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
)
