// internal/secure/password.go
//
// Password hashing for the admin credential.
//
// bcrypt embeds algorithm, cost, and salt in the hash string, so storage
// needs a single column and verification needs no side channel.  Verify
// deliberately collapses every failure mode (malformed hash, cost mismatch,
// wrong password) into `false`; callers must not learn why a credential was
// rejected.
package secure

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a self-contained bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plaintext matches hash.  Malformed hashes
// return false, never an error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
