package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. Each row is one refresh token,
// stored only as a SHA-256 digest.
type SessionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash   string    `gorm:"type:varchar(64);unique;not null"`
	ClientIP    string    `gorm:"type:varchar(64)"`
	ClientAgent string    `gorm:"type:varchar(512)"`
	IsRevoked   bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
