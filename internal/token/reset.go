package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/sanLimbu/taskboard-api/internal"
)

// ResetTokenTTL is how long a password-reset token stays usable. Expiry is
// checked lazily at validation time, there is no eviction process.
const ResetTokenTTL = time.Hour

// NewResetToken returns an opaque reset token built from 256 bits of
// randomness together with its absolute expiry. Storing it against the user
// record is up to the caller, issuing overwrites any prior token.
func NewResetToken() (string, time.Time, error) {
	buf := make([]byte, 32)

	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rand.Read")
	}

	return hex.EncodeToString(buf), time.Now().Add(ResetTokenTTL), nil
}
