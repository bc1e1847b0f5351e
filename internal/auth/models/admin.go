package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an operator account. Passwords are stored as bcrypt hashes only.
type Admin struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// LoginEvent records a successful sign-in for coarse accountability.
type LoginEvent struct {
	ID        uuid.UUID `json:"id"`
	AdminID   uuid.UUID `json:"admin_id"`
	Username  string    `json:"username"`
	Device    string    `json:"device"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
