// Package password wraps bcrypt hashing behind the 72-byte input limit.
// Longer passwords are truncated at a UTF-8-safe boundary; the same
// truncation runs on hash and verify so round-trips stay consistent.
package password

import "golang.org/x/crypto/bcrypt"

// MaxBytes is the bcrypt input limit.
const MaxBytes = 72

// Hash returns the bcrypt hash of the password.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password)) == nil
}

// TooLong reports whether the password exceeds the bcrypt byte limit.
func TooLong(password string) bool {
	return len(password) > MaxBytes
}

// truncate cuts the password to MaxBytes without splitting a UTF-8 rune.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) <= MaxBytes {
		return b
	}
	b = b[:MaxBytes]
	// Drop continuation bytes of a rune cut by the limit,
	// then the rune's now-dangling lead byte.
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	if len(b) > 0 && b[len(b)-1]&0xC0 == 0xC0 {
		b = b[:len(b)-1]
	}
	return b
}
