package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenGeneration = errors.New("failed to generate submission token")
	ErrEmptyToken      = errors.New("token value is empty")
)

const tokenBytes = 32

// SubmissionToken is a single-use capability granting one buyer the right to
// submit exactly one offer against one bid request. The token string is the
// sole credential; it is never revoked, only consumed or left to expire.
type SubmissionToken struct {
	value        string
	bidRequestID uuid.UUID
	buyerID      uuid.UUID
	expiresAt    time.Time
	used         bool
	usedAt       *time.Time
	createdAt    time.Time
}

// Issue mints a fresh token for one invited buyer.
func Issue(bidRequestID, buyerID uuid.UUID, now time.Time, ttl time.Duration) (*SubmissionToken, error) {
	value, err := generateValue()
	if err != nil {
		return nil, err
	}

	return &SubmissionToken{
		value:        value,
		bidRequestID: bidRequestID,
		buyerID:      buyerID,
		expiresAt:    now.Add(ttl),
	}, nil
}

func Reconstruct(
	value string,
	bidRequestID, buyerID uuid.UUID,
	expiresAt time.Time,
	used bool,
	usedAt *time.Time,
	createdAt time.Time,
) (*SubmissionToken, error) {
	if value == "" {
		return nil, ErrEmptyToken
	}
	return &SubmissionToken{
		value:        value,
		bidRequestID: bidRequestID,
		buyerID:      buyerID,
		expiresAt:    expiresAt,
		used:         used,
		usedAt:       usedAt,
		createdAt:    createdAt,
	}, nil
}

func (t *SubmissionToken) IsExpired(now time.Time) bool {
	return !t.expiresAt.After(now)
}

func (t *SubmissionToken) IsUsed() bool {
	return t.used
}

// Redeemable reports whether the token still grants submission rights.
func (t *SubmissionToken) Redeemable(now time.Time) bool {
	return !t.used && !t.IsExpired(now)
}

func (t *SubmissionToken) Value() string           { return t.value }
func (t *SubmissionToken) BidRequestID() uuid.UUID { return t.bidRequestID }
func (t *SubmissionToken) BuyerID() uuid.UUID      { return t.buyerID }
func (t *SubmissionToken) ExpiresAt() time.Time    { return t.expiresAt }
func (t *SubmissionToken) UsedAt() *time.Time      { return t.usedAt }
func (t *SubmissionToken) CreatedAt() time.Time    { return t.createdAt }

func generateValue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", ErrTokenGeneration
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
