// Package auth holds administrator credentials and verifies login attempts.
//
// LocalProvider is the credential store: administrator records in the database,
// with passwords kept as argon2id hashes and an optional TOTP secret.
//
// Authenticator checks a submitted username, password and optional one-time
// passcode against a CredentialStore. Every failure that depends on the
// submitted credentials is reported as ErrInvalidCredentials, so callers
// cannot tell an unknown username from a wrong password. Unknown usernames are
// still run through a password verification to keep response times uniform.
package auth
