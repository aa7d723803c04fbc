package utils

import "golang.org/x/crypto/bcrypt"

// CompareSecret checks a presented secret against its stored bcrypt hash.
func CompareSecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
