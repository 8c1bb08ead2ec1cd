package isbn

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkvxness/shelftui/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Run("strips hyphens and spaces", func(t *testing.T) {
		assert.Equal(t, "9783161484100", Normalize("978-3-16-148410-0"))
		assert.Equal(t, "9783161484100", Normalize(" 978 3 16 148410 0 "))
	})

	t.Run("keeps partial input", func(t *testing.T) {
		assert.Equal(t, "97831", Normalize("978-31"))
		assert.Equal(t, "", Normalize("abc"))
	})
}

func TestValidate(t *testing.T) {
	t.Run("known valid isbn", func(t *testing.T) {
		assert.NoError(t, Validate("9783161484100"))
	})

	t.Run("hyphenated form validates identically", func(t *testing.T) {
		assert.NoError(t, Validate("978-3-16-148410-0"))
	})

	t.Run("wrong check digit", func(t *testing.T) {
		err := Validate("9783161484101")
		assert.ErrorIs(t, err, domain.ErrISBNChecksum)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("too short", func(t *testing.T) {
		err := Validate("97831614841")
		assert.ErrorIs(t, err, domain.ErrISBNLength)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("too long", func(t *testing.T) {
		assert.ErrorIs(t, Validate("97831614841000"), domain.ErrISBNLength)
	})

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, Validate(""), domain.ErrISBNLength)
	})
}

// Any 12-digit prefix plus its computed check digit must validate.
func TestCheckDigitRoundTrip(t *testing.T) {
	prefixes := []string{
		"978316148410",
		"978000000000",
		"979123456789",
		"978999999999",
		"978014103614",
	}
	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			full := prefix + string('0'+CheckDigit(prefix))
			assert.NoError(t, Validate(full))
		})
	}
}

func TestCheckDigitExhaustiveSuffix(t *testing.T) {
	// Vary the last prefix digit across its whole range; exactly one
	// check digit must validate for each.
	for d := 0; d < 10; d++ {
		prefix := fmt.Sprintf("97831614841%d", d)
		valid := 0
		for check := 0; check < 10; check++ {
			if Validate(fmt.Sprintf("%s%d", prefix, check)) == nil {
				valid++
			}
		}
		assert.Equal(t, 1, valid, "prefix %s", prefix)
	}
}

func TestFormat(t *testing.T) {
	t.Run("canonical grouping", func(t *testing.T) {
		assert.Equal(t, "978-3-16-148410-0", Format("9783161484100"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"9783161484100", "978-3-16-148410-0", "978 3161484100", "97831", ""}
		for _, in := range inputs {
			once := Format(in)
			assert.Equal(t, once, Format(once), "input %q", in)
		}
	})

	t.Run("partial input unchanged", func(t *testing.T) {
		assert.Equal(t, "978-31", Format("978-31"))
	})
}
