//go:build unit

package offer_test

import (
	"testing"

	"dealerbid/internal/domain/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCents int64
		wantErr   error
	}{
		{name: "plain integer", input: "25000", wantCents: 2500000},
		{name: "thousands separator", input: "25,000", wantCents: 2500000},
		{name: "dollar sign", input: "$25000", wantCents: 2500000},
		{name: "dollar sign and separators", input: "$1,234,567", wantCents: 123456700},
		{name: "decimal cents", input: "19999.99", wantCents: 1999999},
		{name: "single decimal digit", input: "100.5", wantCents: 10050},
		{name: "surrounding spaces", input: " 5000 ", wantCents: 500000},
		{name: "empty", input: "", wantErr: offer.ErrEmptyAmount},
		{name: "spaces only", input: "   ", wantErr: offer.ErrEmptyAmount},
		{name: "not a number", input: "not-a-number", wantErr: offer.ErrMalformedAmount},
		{name: "zero", input: "0", wantErr: offer.ErrNonPositive},
		{name: "negative", input: "-500", wantErr: offer.ErrMalformedAmount},
		{name: "too many decimals", input: "100.999", wantErr: offer.ErrMalformedAmount},
		{name: "multiple dots", input: "1.2.3", wantErr: offer.ErrMalformedAmount},
		{name: "signed fraction", input: "5.-5", wantErr: offer.ErrMalformedAmount},
		{name: "plus signed fraction", input: "5.+5", wantErr: offer.ErrMalformedAmount},
		{name: "negative zero whole", input: "-0.50", wantErr: offer.ErrMalformedAmount},
		{name: "plus signed whole", input: "+500", wantErr: offer.ErrMalformedAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := offer.ParseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, amount.Cents())
		})
	}
}

func TestAmountUnits(t *testing.T) {
	amount, err := offer.ParseAmount("25,000")
	require.NoError(t, err)
	assert.InDelta(t, 25000.0, amount.Units(), 0.001)

	amount, err = offer.ParseAmount("19999.99")
	require.NoError(t, err)
	assert.InDelta(t, 19999.99, amount.Units(), 0.001)
}
