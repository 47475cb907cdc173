package login

import "errors"

const (
	msgInvalidCredentials = "Invalid credentials"
	msgInternalError      = "Internal server error"
)

// ErrInvalidFormData is returned when the submitted login form cannot be parsed.
var ErrInvalidFormData = errors.New("invalid form data")
