// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered author.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on posts.
	Name string `gorm:"size:100;not null"`

	// Email is the login identifier, stored lower-cased and unique.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. It never leaves the service.
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
