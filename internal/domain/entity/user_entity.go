package entity

import (
	"strings"
	"time"
)

// User is one row of the user table.
// Passwords are stored as bcrypt hashes in PasswordHash.
// Email is always kept in normalized form.
type User struct {
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims surrounding whitespace and lowercases; the result is the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the index of the user whose normalized email matches, or -1.
func FindByEmail(users []User, email string) int {
	key := NormalizeEmail(email)
	for i := range users {
		if NormalizeEmail(users[i].Email) == key {
			return i
		}
	}
	return -1
}
