package offer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyAmount     = errors.New("offer amount is required")
	ErrMalformedAmount = errors.New("offer amount is not a valid number")
	ErrNonPositive     = errors.New("offer amount must be positive")
	ErrInvalidStatus   = errors.New("invalid offer status")
)

// Amount is a currency-less monetary offer held in cents to avoid float drift.
type Amount struct {
	cents int64
}

// ParseAmount normalizes a buyer-typed amount string. Buyers paste formatted
// values like "25,000" or "$18,500.50"; thousands separators, currency signs
// and surrounding whitespace are stripped before parsing. At most two
// fractional digits are accepted.
func ParseAmount(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{}, ErrEmptyAmount
	}

	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	if s == "" {
		return Amount{}, ErrMalformedAmount
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if len(frac) > 2 {
			return Amount{}, ErrMalformedAmount
		}
	}
	if whole == "" {
		whole = "0"
	}

	// Digits only on both sides of the point; ParseInt alone would let
	// signs through ("5.-5", "-0.50").
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Amount{}, ErrMalformedAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Amount{}, ErrMalformedAmount
	}

	cents := units * 100
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Amount{}, ErrMalformedAmount
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}

	if cents <= 0 {
		return Amount{}, ErrNonPositive
	}

	return Amount{cents: cents}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func NewAmountFromCents(cents int64) (Amount, error) {
	if cents <= 0 {
		return Amount{}, ErrNonPositive
	}
	return Amount{cents: cents}, nil
}

func (a Amount) Cents() int64 {
	return a.cents
}

// Units returns the amount in whole currency units, as displayed to users.
func (a Amount) Units() float64 {
	return float64(a.cents) / 100.0
}

func (a Amount) String() string {
	if a.cents%100 == 0 {
		return strconv.FormatInt(a.cents/100, 10)
	}
	return fmt.Sprintf("%d.%02d", a.cents/100, a.cents%100)
}
