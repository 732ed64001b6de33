package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index keeps
// one review per user per menu item.
type ReviewModel struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	MenuItemID uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_item_user"`
	UserID     uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_item_user"`
	Rating     float64                     `gorm:"not null"`
	Comment    string                      `gorm:"type:text"`
	Images     datatypes.JSONSlice[string]
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
