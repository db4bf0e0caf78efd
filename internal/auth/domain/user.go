package domain

import "time"

type User struct {
	ID              string
	Username        string
	Email           string
	FirstName       string
	LastName        string
	PasswordHash    string // argon2 encoded
	Roles           []string
	IsActive        bool
	IsEmailVerified bool
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins first and last name for the token claim, tolerating
// either half being empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
