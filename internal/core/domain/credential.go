package domain

import "time"

// BusinessCredential is the secondary, business-scoped login of a user. It only
// exists in the local store.
type BusinessCredential struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	BusinessName      string    `json:"business_name" db:"business_name"`
	Email             string    `json:"email" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	VerificationToken *string   `json:"-" db:"verification_token"`
	IsVerified        bool      `json:"is_verified" db:"is_verified"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
