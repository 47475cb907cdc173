package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/db/models"
)

// CredentialStore looks up administrators by username.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Administrator, error)
}

// Authenticator verifies login attempts against a CredentialStore.
type Authenticator struct {
	store CredentialStore

	dummyOnce sync.Once
	dummy     models.Administrator
}

// NewAuthenticator creates an Authenticator on top of the given store.
func NewAuthenticator(store CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate returns the administrator when username, password and, if the
// administrator enrolled TOTP, passcode are valid. Credential failures always
// return ErrInvalidCredentials, store failures are returned wrapped.
func (a *Authenticator) Authenticate(ctx context.Context, username, password, passcode string) (*models.Administrator, error) {
	admin, err := a.store.FindByUsername(ctx, username)
	if errors.Is(err, ErrAdministratorNotFound) {
		// same argon2 work as a real check
		_, _ = a.dummyAdministrator().VerifyPassword(password)

		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	match, err := admin.VerifyPassword(password)
	if err != nil {
		log.Error().Err(err).Str("username", admin.Username).Msg("stored password hash is unusable")

		return nil, ErrInvalidCredentials
	}

	if !match {
		return nil, ErrInvalidCredentials
	}

	if admin.TOTPSecret != "" && !totp.Validate(passcode, admin.TOTPSecret) {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

func (a *Authenticator) dummyAdministrator() *models.Administrator {
	a.dummyOnce.Do(func() {
		if err := a.dummy.SetPassword("not-a-real-password"); err != nil {
			log.Error().Err(err).Msg("failed to prepare dummy password hash")
		}
	})

	return &a.dummy
}
