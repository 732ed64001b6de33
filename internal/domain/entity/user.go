// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	// StatusActive is the default state; the account may log in and order.
	StatusActive UserStatus = "active"
	// StatusBlocked marks an account an administrator has suspended.
	StatusBlocked UserStatus = "blocked"
)

// IsValid checks if the UserStatus is a known value.
func (s UserStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusBlocked:
		return true
	default:
		return false
	}
}

// User is the core identity in the system. Email and phone are both unique
// login identifiers; PasswordHash is a bcrypt digest and never leaves the
// credential store.
type User struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	PasswordHash string
	Name         string
	Roles        Roles
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the shape of a user that may cross the API boundary.
// It carries no secret material.
type PublicUser struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Name   string    `json:"name"`
	Roles  []string  `json:"roles"`
	Status string    `json:"status"`
}

// Public strips the user down to its non-secret fields.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:     u.ID,
		Email:  u.Email,
		Phone:  u.Phone,
		Name:   u.Name,
		Roles:  u.Roles.ToStrings(),
		Status: string(u.Status),
	}
}
