package main

import (
	"strings"
	"time"
)

// User is the persisted auth user record. Profile pages expose the public
// fields; PasswordHash never leaves this process.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:150;not null"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	Email        string    `gorm:"size:320"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName allows explicit control (optional; defaults to "users").
func (User) TableName() string { return "users" }

// FullName is what templates show next to a post or comment; falls back to
// the username when the profile has no name filled in.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
