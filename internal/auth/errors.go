package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for any unknown username, wrong password or wrong passcode.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAdministratorNotFound is returned when no administrator has the given username or ID.
	ErrAdministratorNotFound = errors.New("administrator not found")

	// ErrAdministratorExists is returned when creating an administrator whose username is taken.
	ErrAdministratorExists = errors.New("administrator with this username already exists")

	// ErrEmptyUsername is returned when a username is empty.
	ErrEmptyUsername = errors.New("username can not be empty")

	// ErrEmptyPassword is returned when a password is empty.
	ErrEmptyPassword = errors.New("password can not be empty")

	// ErrTOTPAlreadyEnabled is returned when enrolling a second factor twice.
	ErrTOTPAlreadyEnabled = errors.New("totp is already enabled")
)
