// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account holder.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user. Immutable after creation.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// Stored lower-cased; it must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext and is never serialized outward.
	Password string `gorm:"size:255;not null"`

	// FirstName is the user's given name. Optional.
	FirstName string `gorm:"size:100"`

	// LastName is the user's family name. Optional.
	LastName string `gorm:"size:100"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
