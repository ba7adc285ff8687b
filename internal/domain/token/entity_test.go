//go:build unit

package token_test

import (
	"testing"
	"time"

	"dealerbid/internal/domain/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bidRequestID := uuid.New()
	buyerID := uuid.New()

	tok, err := token.Issue(bidRequestID, buyerID, now, 168*time.Hour)
	require.NoError(t, err)

	assert.NotEmpty(t, tok.Value())
	assert.Equal(t, bidRequestID, tok.BidRequestID())
	assert.Equal(t, buyerID, tok.BuyerID())
	assert.Equal(t, now.Add(168*time.Hour), tok.ExpiresAt())
	assert.False(t, tok.IsUsed())
	assert.True(t, tok.Redeemable(now))
}

func TestIssueGeneratesUniqueValues(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)

	for range 100 {
		tok, err := token.Issue(uuid.New(), uuid.New(), now, time.Hour)
		require.NoError(t, err)
		assert.False(t, seen[tok.Value()], "duplicate token value generated")
		seen[tok.Value()] = true
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)

	t.Run("fresh token is redeemable", func(t *testing.T) {
		tok, err := token.Reconstruct("abc", uuid.New(), uuid.New(), expiry, false, nil, now)
		require.NoError(t, err)
		assert.True(t, tok.Redeemable(now))
	})

	t.Run("expired token is not redeemable", func(t *testing.T) {
		tok, err := token.Reconstruct("abc", uuid.New(), uuid.New(), expiry, false, nil, now)
		require.NoError(t, err)
		assert.True(t, tok.IsExpired(expiry.Add(time.Second)))
		assert.False(t, tok.Redeemable(expiry.Add(time.Second)))
	})

	t.Run("token expiring exactly now is expired", func(t *testing.T) {
		tok, err := token.Reconstruct("abc", uuid.New(), uuid.New(), expiry, false, nil, now)
		require.NoError(t, err)
		assert.True(t, tok.IsExpired(expiry))
		assert.False(t, tok.Redeemable(expiry))
	})

	t.Run("used token is not redeemable", func(t *testing.T) {
		usedAt := now.Add(time.Minute)
		tok, err := token.Reconstruct("abc", uuid.New(), uuid.New(), expiry, true, &usedAt, now)
		require.NoError(t, err)
		assert.True(t, tok.IsUsed())
		assert.False(t, tok.Redeemable(now))
	})
}

func TestReconstructRejectsEmptyValue(t *testing.T) {
	_, err := token.Reconstruct("", uuid.New(), uuid.New(), time.Now(), false, nil, time.Now())
	assert.ErrorIs(t, err, token.ErrEmptyToken)
}
