package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bistro/internal/domain/entity"
)

// MenuItemModel mirrors the 'menu_items' table. Slice-valued attributes are
// stored as JSON columns.
type MenuItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(100);index"`

	Thumbnail string                      `gorm:"type:varchar(512)"`
	Images    datatypes.JSONSlice[string]
	Tags      datatypes.JSONSlice[string]
	Type      string                      `gorm:"type:varchar(50)"`

	IsAvailable bool `gorm:"not null;default:true"`

	PreparationTime string `gorm:"type:varchar(50)"`
	Portion         string `gorm:"type:varchar(50)"`

	Ingredients            datatypes.JSONSlice[string]
	NutritionalInformation datatypes.JSONSlice[entity.Nutrient]

	Rate      float64 `gorm:"not null;default:0"`
	RateCount int     `gorm:"not null;default:0"`

	Price           float64 `gorm:"not null"`
	DiscountPrice   *float64
	DiscountStartAt *time.Time
	DiscountEndAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
