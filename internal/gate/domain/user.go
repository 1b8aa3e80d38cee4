package domain

import "time"

// User is the host-owned account record. This service only ever writes the
// Role field (and OTPSecret during enrollment); the set of valid role
// strings is owned by the collaborating role manager.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string  // argon2 encoded
	Role         string
	OTPSecret    *string // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
