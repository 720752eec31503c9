// Package password hashes and verifies user passwords with bcrypt. The salt
// is generated per call and stored inside the hash.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used by Hash. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. A malformed hash never matches.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
