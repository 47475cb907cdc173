// Package uniuri generates random passwords for administrator accounts created
// without a configured password.
package uniuri
