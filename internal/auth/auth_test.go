package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephleon/leonweb/internal/db/dbtest"
	"github.com/josephleon/leonweb/internal/db/models"
)

func TestLocalProviderCreate(t *testing.T) {
	ctx := context.Background()
	lp := NewLocalProvider(dbtest.New(t))

	admin, err := lp.Create(ctx, "admin", "s3cr3t")
	require.NoError(t, err)
	assert.NotZero(t, admin.ID)
	assert.NotEqual(t, "s3cr3t", admin.PasswordHash, "password must not be stored in plaintext")
	assert.Contains(t, admin.PasswordHash, "$argon2id$")

	_, err = lp.Create(ctx, "admin", "other")
	require.ErrorIs(t, err, ErrAdministratorExists)

	_, err = lp.Create(ctx, "", "pw")
	require.ErrorIs(t, err, ErrEmptyUsername)

	_, err = lp.Create(ctx, "bob", "")
	require.ErrorIs(t, err, ErrEmptyPassword)

	found, err := lp.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Username)

	_, err = lp.GetByID(ctx, admin.ID+100)
	require.ErrorIs(t, err, ErrAdministratorNotFound)
}

func TestEnsureAdministrator(t *testing.T) {
	ctx := context.Background()
	lp := NewLocalProvider(dbtest.New(t))

	created, err := lp.EnsureAdministrator(ctx, "admin", "first")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = lp.EnsureAdministrator(ctx, "admin", "second")
	require.NoError(t, err)
	assert.False(t, created)

	// the second call must not touch the existing password
	a := NewAuthenticator(lp)
	_, err = a.Authenticate(ctx, "admin", "first", "")
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	lp := NewLocalProvider(dbtest.New(t))

	_, err := lp.Create(ctx, "admin", "s3cr3t")
	require.NoError(t, err)

	a := NewAuthenticator(lp)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "s3cr3t"},
		{name: "wrong password", username: "admin", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "root", password: "s3cr3t", wantErr: ErrInvalidCredentials},
		{name: "username is case sensitive", username: "Admin", password: "s3cr3t", wantErr: ErrInvalidCredentials},
		{name: "empty password", username: "admin", password: "", wantErr: ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			admin, err := a.Authenticate(ctx, tc.username, tc.password, "")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, admin)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.username, admin.Username)
		})
	}
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	lp := NewLocalProvider(dbtest.New(t))
	a := NewAuthenticator(lp)

	_, err := lp.Create(ctx, "admin", "old")
	require.NoError(t, err)

	require.NoError(t, lp.SetPassword(ctx, "admin", "new"))

	_, err = a.Authenticate(ctx, "admin", "old", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "admin", "new", "")
	require.NoError(t, err)

	require.ErrorIs(t, lp.SetPassword(ctx, "nobody", "x"), ErrAdministratorNotFound)
	require.ErrorIs(t, lp.SetPassword(ctx, "admin", ""), ErrEmptyPassword)
}

func TestAuthenticateWithTOTP(t *testing.T) {
	ctx := context.Background()
	lp := NewLocalProvider(dbtest.New(t))
	a := NewAuthenticator(lp)

	_, err := lp.Create(ctx, "admin", "s3cr3t")
	require.NoError(t, err)

	key, err := lp.EnableTOTP(ctx, "admin", "leonweb")
	require.NoError(t, err)
	assert.Contains(t, key.URL(), "otpauth://totp/")

	_, err = lp.EnableTOTP(ctx, "admin", "leonweb")
	require.ErrorIs(t, err, ErrTOTPAlreadyEnabled)

	_, err = a.Authenticate(ctx, "admin", "s3cr3t", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "admin", "s3cr3t", "000000x")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	admin, err := a.Authenticate(ctx, "admin", "s3cr3t", code)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	require.NoError(t, lp.DisableTOTP(ctx, "admin"))

	_, err = a.Authenticate(ctx, "admin", "s3cr3t", "")
	require.NoError(t, err)
}

type failingStore struct{ err error }

func (f failingStore) FindByUsername(context.Context, string) (*models.Administrator, error) {
	return nil, f.err
}

func TestAuthenticateStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	a := NewAuthenticator(failingStore{err: storeErr})

	_, err := a.Authenticate(context.Background(), "admin", "pw", "")
	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
