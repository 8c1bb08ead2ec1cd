// Package isbn validates and formats ISBN-13 identifiers. All functions are
// pure: the raw 13-digit sequence is the identity, hyphenation is display form.
package isbn

import (
	"strings"

	"github.com/nkvxness/shelftui/internal/domain"
)

// Normalize strips every non-digit character. It does not validate length,
// so it is safe to call on partial input while the user is still typing.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that s contains a well-formed ISBN-13. It returns
// domain.ErrISBNLength unless exactly 13 digits remain after normalization,
// domain.ErrISBNChecksum when the check digit is wrong, and nil otherwise.
func Validate(s string) error {
	digits := Normalize(s)
	if len(digits) != 13 {
		return domain.ErrISBNLength
	}
	if digits[12]-'0' != CheckDigit(digits[:12]) {
		return domain.ErrISBNChecksum
	}
	return nil
}

// CheckDigit computes the ISBN-13 check digit for a 12-digit prefix:
// digits are weighted 1,3 alternating, check = (10 - sum mod 10) mod 10.
func CheckDigit(prefix string) byte {
	sum := 0
	for i := 0; i < len(prefix) && i < 12; i++ {
		d := int(prefix[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return byte((10 - sum%10) % 10)
}

// Format renders s in the canonical hyphenated grouping XXX-X-XXX-XXXXX-X.
// Input that does not normalize to 13 digits is returned unchanged, which
// keeps in-progress form input intact. Formatting an already-formatted
// string yields the same result.
func Format(s string) string {
	digits := Normalize(s)
	if len(digits) != 13 {
		return s
	}
	parts := []string{digits[:3], digits[3:4], digits[4:7], digits[7:12], digits[12:]}
	return strings.Join(parts, "-")
}
