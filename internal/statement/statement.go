package statement

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors
var (
	ErrUnsupportedBank = errors.New("unsupported bank")
)

// Parse extracts transactions from a raw statement file for the given bank.
// Santander statements are XLSX workbooks; BBVA statements are PDFs.
// Malformed rows are skipped, never fatal: an empty transaction list with a
// nil error is a valid result and the caller decides whether to reject it.
func Parse(data []byte, bank Bank) (*Result, error) {
	switch bank {
	case BankSantander:
		return ParseSantander(data)
	case BankBBVA:
		return ParseBBVA(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBank, bank)
	}
}

// ParseBankName converts a user-supplied bank identifier into a Bank
func ParseBankName(name string) (Bank, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(BankSantander):
		return BankSantander, nil
	case string(BankBBVA):
		return BankBBVA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBank, name)
	}
}

// today returns the current date truncated to midnight UTC, the fallback
// statement date when a file carries no recognizable closing date
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
