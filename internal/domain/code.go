package domain

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	bookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingCodeLength   = 8
	bookingPrefixLength = 2
)

// CodeGenerator produces booking codes: fixed two-letter prefix + 8 uppercase
// alphanumerics. Uniqueness is enforced by the store, not here.
type CodeGenerator struct {
	prefix string
	random io.Reader
}

// NewCodeGenerator creates a generator backed by crypto/rand
func NewCodeGenerator(prefix string) *CodeGenerator {
	return &CodeGenerator{prefix: strings.ToUpper(prefix), random: rand.Reader}
}

// Generate returns a new booking code
func (g *CodeGenerator) Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(len(g.prefix) + bookingCodeLength)
	sb.WriteString(g.prefix)

	limit := big.NewInt(int64(len(bookingCodeAlphabet)))
	for i := 0; i < bookingCodeLength; i++ {
		n, err := rand.Int(g.random, limit)
		if err != nil {
			return "", fmt.Errorf("generate booking code: %w", err)
		}
		sb.WriteByte(bookingCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeBookingCode upper-cases and trims user input
func NormalizeBookingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidBookingCode checks the two-letter prefix + 8 alphanumerics layout of a
// normalized code. The prefix itself is not compared: codes issued under an
// earlier prefix stay valid.
func IsValidBookingCode(code string) bool {
	if len(code) != bookingPrefixLength+bookingCodeLength {
		return false
	}
	for i, r := range code {
		if i < bookingPrefixLength && (r < 'A' || r > 'Z') {
			return false
		}
		if !strings.ContainsRune(bookingCodeAlphabet, r) {
			return false
		}
	}
	return true
}
