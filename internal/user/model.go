package user

import "time"

// User represents a registered member of a household organization
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// PasswordHash is never serialized
	PasswordHash string `json:"-"`
}
