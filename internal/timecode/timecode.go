package timecode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Seconds is an exact decimal quantity of seconds. Split points and overlay
// offsets travel through ffprobe as decimal strings; keeping them decimal end
// to end avoids the rounding drift binary floats accumulate across repeated
// splits and concatenations.
type Seconds struct {
	value decimal.Decimal
}

// Zero is the zero offset.
var Zero = Seconds{}

// Parse converts a decimal string such as "2.52" into Seconds.
func Parse(value string) (Seconds, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return Seconds{}, errors.New("timecode: empty value")
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Seconds{}, fmt.Errorf("timecode: parse %q: %w", value, err)
	}
	return Seconds{value: parsed}, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(value string) Seconds {
	parsed, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

// FromInt converts whole seconds.
func FromInt(value int64) Seconds {
	return Seconds{value: decimal.NewFromInt(value)}
}

// String renders the offset as a plain fixed-point literal with no exponent
// and no trailing zeros, which is the form the external tools accept in
// -ss/-t arguments.
func (s Seconds) String() string {
	text := s.value.String()
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimRight(text, ".")
	}
	return text
}

// Add returns s + other.
func (s Seconds) Add(other Seconds) Seconds {
	return Seconds{value: s.value.Add(other.value)}
}

// Sub returns s - other.
func (s Seconds) Sub(other Seconds) Seconds {
	return Seconds{value: s.value.Sub(other.value)}
}

// Cmp returns -1, 0 or 1 comparing s against other.
func (s Seconds) Cmp(other Seconds) int {
	return s.value.Cmp(other.value)
}

// Equal reports exact decimal equality.
func (s Seconds) Equal(other Seconds) bool {
	return s.value.Equal(other.value)
}

// IsPositive reports whether s is strictly greater than zero.
func (s Seconds) IsPositive() bool {
	return s.value.IsPositive()
}

// IsZero reports whether s is exactly zero.
func (s Seconds) IsZero() bool {
	return s.value.IsZero()
}
