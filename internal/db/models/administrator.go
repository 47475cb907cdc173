package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
)

// Administrator is an account allowed into the admin back office.
// The password is only ever stored as an argon2id hash.
type Administrator struct {
	// ID is the unique identifier for the administrator.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique login name.
	Username string `gorm:"uniqueIndex;size:100;not null"`
	// PasswordHash is the argon2id hash in PHC string format.
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`
	// TOTPSecret is the base32 TOTP secret, empty when no second factor is enrolled.
	TOTPSecret string `gorm:"column:totp_secret;size:64" json:"-"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default pluralized table naming.
func (Administrator) TableName() string {
	return "administrators"
}

// String returns the username, used in access logs.
func (a Administrator) String() string {
	return a.Username
}

// SetPassword hashes the plaintext password with argon2id default params.
func (a *Administrator) SetPassword(password string) error {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	a.PasswordHash = hash

	return nil
}

// VerifyPassword compares the password against the stored hash in constant time.
func (a *Administrator) VerifyPassword(password string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, a.PasswordHash)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify password")
	}

	return match, nil
}
