// Package password wraps the one-way hashing primitive used for stored
// credentials.
package password

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sanLimbu/taskboard-api/internal"
)

// Hasher hashes and verifies passwords using bcrypt.
type Hasher struct {
	cost int
}

// NewHasher instantiates a Hasher using the default bcrypt cost.
func NewHasher() *Hasher {
	return &Hasher{
		cost: bcrypt.DefaultCost,
	}
}

// Hash returns the one-way hash of the received password.
func (h *Hasher) Hash(password string) (string, error) {
	res, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "bcrypt.GenerateFromPassword")
	}

	return string(res), nil
}

// Verify indicates whether the password matches the stored hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
