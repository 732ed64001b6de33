package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID                      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string                         `gorm:"type:varchar(255);unique;not null"`
	Phone        string                         `gorm:"type:varchar(32);unique;not null"`
	PasswordHash string                         `gorm:"type:varchar(255);not null"`
	Name         string                         `gorm:"type:varchar(100)"`
	Roles        datatypes.JSONSlice[string]    `gorm:"not null"`
	Status       string                         `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
