package domain

import "time"

// User is an admin account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
