package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a single-use OTP challenge. Only the hash of the code
// is stored; the plaintext goes out by mail and is never persisted.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	OTPHash   []byte    `db:"otp_hash" json:"-"`
	OTPSalt   []byte    `db:"otp_salt" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Consumed  bool      `db:"consumed" json:"consumed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
