package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/db/models"
)

const whereUsername = "username = ?"

// LocalProvider is the database backed credential store.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local credential store.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// FindByUsername looks up an administrator by exact username.
func (p *LocalProvider) FindByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	var admin models.Administrator

	err := p.db.WithContext(ctx).Where(whereUsername, username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdministratorNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query administrator: %w", err)
	}

	return &admin, nil
}

// GetByID retrieves an administrator by ID.
func (p *LocalProvider) GetByID(ctx context.Context, id uint64) (*models.Administrator, error) {
	var admin models.Administrator

	err := p.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdministratorNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query administrator: %w", err)
	}

	return &admin, nil
}

// Create adds a new administrator with the given password.
func (p *LocalProvider) Create(ctx context.Context, username, password string) (*models.Administrator, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if password == "" {
		return nil, ErrEmptyPassword
	}

	admin := models.Administrator{Username: username}
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Administrator{}).Where(whereUsername, username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing administrator: %w", err)
		}

		if count > 0 {
			return ErrAdministratorExists
		}

		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create administrator: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

// EnsureAdministrator creates the administrator unless one with this username exists.
// It reports whether a record was created.
func (p *LocalProvider) EnsureAdministrator(ctx context.Context, username, password string) (bool, error) {
	_, err := p.Create(ctx, username, password)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrAdministratorExists):
		return false, nil
	default:
		return false, err
	}
}

// SetPassword replaces the password of the administrator.
func (p *LocalProvider) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	admin, err := p.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err = admin.SetPassword(password); err != nil {
		return err
	}

	return p.db.WithContext(ctx).Model(admin).Update("password_hash", admin.PasswordHash).Error
}

// EnableTOTP enrolls a new TOTP secret for the administrator and returns the key,
// whose URL can be rendered as a QR code for authenticator apps.
func (p *LocalProvider) EnableTOTP(ctx context.Context, username, issuer string) (*otp.Key, error) {
	admin, err := p.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if admin.TOTPSecret != "" {
		return nil, ErrTOTPAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: admin.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp key: %w", err)
	}

	if err = p.db.WithContext(ctx).Model(admin).Update("totp_secret", key.Secret()).Error; err != nil {
		return nil, err
	}

	return key, nil
}

// DisableTOTP removes the TOTP secret of the administrator.
func (p *LocalProvider) DisableTOTP(ctx context.Context, username string) error {
	admin, err := p.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	return p.db.WithContext(ctx).Model(admin).Update("totp_secret", "").Error
}
