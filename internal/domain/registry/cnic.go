package registry

import (
	"fmt"
	"strings"
)

// cnicDigits is the exact digit count of a CNIC (national identity number).
const cnicDigits = 13

// NormalizeCNIC strips every non-digit from raw and re-inserts dashes after
// the 5th and 12th digit, yielding NNNNN-NNNNNNN-N. Anything other than
// exactly 13 digits is rejected. Only ASCII digits count; digits from other
// scripts are treated as invalid characters and dropped.
func NormalizeCNIC(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != cnicDigits {
		return "", fmt.Errorf("cnic must contain exactly %d digits, got %d", cnicDigits, len(digits))
	}
	return digits[:5] + "-" + digits[5:12] + "-" + digits[12:], nil
}
