// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the sole persisted entity: a registered person identified by a normalized email.
type Account struct {
	ID           uuid.UUID // Assigned once at signup, never changes.
	Email        string    // Normalized (trimmed, lowercased) login identifier, unique across accounts.
	PasswordHash string    // bcrypt hash of the password. Never leaves the service boundary.
	Location     Location  // Free text or a coordinate pair supplied at signup.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// NormalizeEmail returns the uniqueness key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
