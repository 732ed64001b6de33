package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PreferenceModel mirrors the 'user_preferences' table.
type PreferenceModel struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID          uuid.UUID                      `gorm:"type:uuid;unique;not null"`
	FavoriteItemIDs datatypes.JSONSlice[uuid.UUID]
	DietaryTags     datatypes.JSONSlice[string]
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (PreferenceModel) TableName() string {
	return "user_preferences"
}
