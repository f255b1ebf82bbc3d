package impl

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const verificationCodeDigits = 6

// normalizeEmail is applied before every lookup and insert so stored e-mails are lower-case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newVerificationCode returns a random zero-padded 6-digit numeric code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", errors.Wrap(err, "generate verification code")
	}

	return fmt.Sprintf("%0*d", verificationCodeDigits, n.Int64()), nil
}
