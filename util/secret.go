package util

import "golang.org/x/crypto/bcrypt"

// HashSecret bcrypt-hashes a client secret for storage at rest. Storage
// adapters use this; the engine itself never hashes a secret.
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifySecret reports whether secret matches the bcrypt hash produced
// by HashSecret. bcrypt's comparison is constant-time with respect to
// the candidate secret.
func VerifySecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
