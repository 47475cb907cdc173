// Package main provides the entry point of leonweb, a small website with a blog,
// a JSON contact form endpoint and a session protected admin back office.
// The web server is built on fiber, data is stored through gorm in sqlite,
// mysql or postgres, and administrators log in with argon2id hashed passwords
// and an optional TOTP second factor.
package main
