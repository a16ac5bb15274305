// Package response defines the JSON bodies written by the HTTP handlers.
package response

import (
	"time"

	"accounts/internal/domain/entity"
)

// ErrorBody is written for every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// User is the public view of an account returned by signup and login.
type User struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Location  entity.Location `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Profile is the public view of the caller's own account.
type Profile struct {
	User
	UpdatedAt time.Time `json:"updatedAt"`
}

// Signup is returned with 201 after registration.
type Signup struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Login is returned with 200 after a successful login.
type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Health reports service and store status.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// NewUser maps an account to its public view. The password hash is never copied.
func NewUser(account *entity.Account) User {
	return User{
		ID:        account.ID.String(),
		Email:     account.Email,
		Location:  account.Location,
		CreatedAt: account.CreatedAt,
	}
}

// NewProfile maps an account to the caller's profile view.
func NewProfile(account *entity.Account) Profile {
	return Profile{
		User:      NewUser(account),
		UpdatedAt: account.UpdatedAt,
	}
}
