package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Mailer is the outbound mail collaborator. Failures degrade to reported
// errors, never fatal ones.
type Mailer interface {
	SendSimple(to []string, subject, body string) error
	SendHTML(to []string, subject, htmlBody string) error
}

// normalizeEmail applies the canonical email normalization used everywhere
// an address is stored or looked up: lowercase and trim.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateVerificationCode returns a fixed-width 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
