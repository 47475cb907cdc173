package uniuri

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// PasswordLen gives ~119 bits of entropy with Chars.
const PasswordLen = 20

// Chars are the characters of generated passwords.
var Chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// ErrCharsetLength is returned for charsets with less than 2 or more than 256 characters.
var ErrCharsetLength = errors.New("charset must have between 2 and 256 characters")

// Password returns a random password of PasswordLen characters from Chars.
func Password() (string, error) {
	return NewLenChars(PasswordLen, Chars)
}

// NewLenChars returns a random string of the given length using chars.
// Random bytes above the largest multiple of len(chars) are skipped to avoid modulo bias.
func NewLenChars(length int, chars []byte) (string, error) {
	clen := len(chars)
	if clen < 2 || clen > 256 { //nolint:mnd
		return "", ErrCharsetLength
	}

	if length <= 0 {
		return "", nil
	}

	limit := 256 - (256 % clen) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, rb := range buf {
			if int(rb) >= limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
