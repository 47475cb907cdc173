package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if db.engine is not one of sqlite, mysql or postgres.
	ErrUnknownDBEngine = errors.New("config db.engine must be sqlite, mysql or postgres")

	// ErrSecretKeyRequired error if no cookie secret is configured outside dev mode.
	ErrSecretKeyRequired = errors.New("config webserver.secretkey is required outside dev mode")

	// ErrInvalidSecretKey error if the cookie secret is not a base64 encoded 16, 24 or 32 byte key.
	ErrInvalidSecretKey = errors.New("config webserver.secretkey must be a base64 encoded 16, 24 or 32 byte key")
)
