//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type QuickBidTestSuite struct {
	suite.Suite
	state    *fakeState
	clock    *clock.MockClock
	commands commands.QuickBidCommands

	now          time.Time
	bidRequestID uuid.UUID
	sellerID     uuid.UUID
	buyerID      uuid.UUID
}

func TestQuickBidTestSuite(t *testing.T) {
	suite.Run(t, new(QuickBidTestSuite))
}

func (s *QuickBidTestSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.state = newFakeState()
	s.clock = clock.NewMockClock(s.now)
	s.commands = commands.NewQuickBidCommands(newFakeUoW(s.state), s.clock)

	s.bidRequestID = uuid.New()
	s.sellerID = uuid.New()
	s.buyerID = uuid.New()

	s.state.addRequest(s.bidRequestID, "2021 Toyota Camry", s.sellerID)
	s.state.addCreator(s.bidRequestID, s.sellerID, "seller@example.com")
	s.state.addBuyer(s.buyerID, "buyer@example.com", "+15550123456", "Sunrise Motors")
}

func (s *QuickBidTestSuite) issueToken(value string, ttl time.Duration) {
	s.state.addToken(value, s.bidRequestID, s.buyerID, s.now.Add(ttl))
}

func (s *QuickBidTestSuite) TestValidateToken_Valid() {
	s.issueToken("tok-valid", time.Hour)

	result, err := s.commands.ValidateToken(context.Background(), "tok-valid")
	s.Require().NoError(err)

	s.True(result.IsValid)
	s.Empty(result.Reason)
	s.Equal(s.bidRequestID, result.BidRequestID)
	s.Equal(s.buyerID, result.BuyerID)
	s.Equal("2021 Toyota Camry", result.VehicleSummary)
	s.False(result.HasExistingBid)
}

func (s *QuickBidTestSuite) TestValidateToken_Unknown() {
	result, err := s.commands.ValidateToken(context.Background(), "never-issued")
	s.Require().NoError(err)

	s.False(result.IsValid)
	s.Equal(commands.ReasonInvalidOrExpired, result.Reason)
}

func (s *QuickBidTestSuite) TestValidateToken_Empty() {
	result, err := s.commands.ValidateToken(context.Background(), "   ")
	s.Require().NoError(err)

	s.False(result.IsValid)
	s.Equal(commands.ReasonInvalidOrExpired, result.Reason)
}

func (s *QuickBidTestSuite) TestValidateToken_Expired() {
	s.issueToken("tok-expired", time.Hour)
	s.clock.Add(2 * time.Hour)

	result, err := s.commands.ValidateToken(context.Background(), "tok-expired")
	s.Require().NoError(err)

	s.False(result.IsValid)
	s.Equal(commands.ReasonExpired, result.Reason)
}

func (s *QuickBidTestSuite) TestValidateToken_UsedWithExistingBid() {
	s.issueToken("tok-used", time.Hour)

	_, err := s.commands.SubmitBid(context.Background(), "tok-used", "25,000")
	s.Require().NoError(err)

	result, err := s.commands.ValidateToken(context.Background(), "tok-used")
	s.Require().NoError(err)

	s.False(result.IsValid)
	s.Equal(commands.ReasonAlreadyUsed, result.Reason)
	s.True(result.HasExistingBid)
	s.Require().NotNil(result.ExistingBidAmount)
	s.InDelta(25000.0, *result.ExistingBidAmount, 0.001)
}

func (s *QuickBidTestSuite) TestValidateToken_UsedWithoutRecordedBid() {
	s.issueToken("tok-orphan", time.Hour)
	s.state.tokens["tok-orphan"].IsUsed = true

	result, err := s.commands.ValidateToken(context.Background(), "tok-orphan")
	s.Require().NoError(err)

	// A used token with no bid behind it gets the generic rejection, not a
	// reuse hint.
	s.False(result.IsValid)
	s.Equal(commands.ReasonInvalidOrExpired, result.Reason)
	s.False(result.HasExistingBid)
	s.Nil(result.ExistingBidAmount)
}

func (s *QuickBidTestSuite) TestSubmitBid_Success() {
	s.issueToken("tok-1", time.Hour)

	result, err := s.commands.SubmitBid(context.Background(), "tok-1", "25,000")
	s.Require().NoError(err)

	s.Equal(s.bidRequestID, result.BidRequestID)
	s.InDelta(25000.0, result.Amount, 0.001)

	offerSnap, ok := s.state.offers[result.OfferID]
	s.Require().True(ok)
	s.Equal(int64(2500000), offerSnap.AmountCents)
	s.Equal("pending", offerSnap.Status)
	s.Equal(s.buyerID, offerSnap.BuyerID)

	s.True(s.state.tokens["tok-1"].IsUsed)

	s.Require().Len(s.state.jobs, 1)
	s.Equal("bid_received", s.state.jobs[0].Topic)
	s.Contains(string(s.state.jobs[0].Payload), "seller@example.com")
}

func (s *QuickBidTestSuite) TestSubmitBid_FormattedAmounts() {
	tests := []struct {
		raw       string
		wantCents int64
	}{
		{raw: "$18,500.50", wantCents: 1850050},
		{raw: "9000", wantCents: 900000},
	}

	for _, tt := range tests {
		state := newFakeState()
		state.addRequest(s.bidRequestID, "2021 Toyota Camry", s.sellerID)
		state.addCreator(s.bidRequestID, s.sellerID, "seller@example.com")
		state.addToken("tok", s.bidRequestID, uuid.New(), s.now.Add(time.Hour))
		cmds := commands.NewQuickBidCommands(newFakeUoW(state), s.clock)

		result, err := cmds.SubmitBid(context.Background(), "tok", tt.raw)
		s.Require().NoError(err, "amount %q", tt.raw)
		s.Equal(tt.wantCents, state.offers[result.OfferID].AmountCents)
	}
}

func (s *QuickBidTestSuite) TestSubmitBid_InvalidAmount() {
	s.issueToken("tok-1", time.Hour)

	_, err := s.commands.SubmitBid(context.Background(), "tok-1", "not-a-number")
	s.Require().ErrorIs(err, errs.ErrInvalidAmount)

	// Rejected before any persistence: the token must stay redeemable.
	s.False(s.state.tokens["tok-1"].IsUsed)
	s.Empty(s.state.offers)
}

func (s *QuickBidTestSuite) TestSubmitBid_EmptyToken() {
	_, err := s.commands.SubmitBid(context.Background(), "  ", "25000")
	s.Require().ErrorIs(err, errs.ErrTokenNotFound)
}

func (s *QuickBidTestSuite) TestSubmitBid_UnknownToken() {
	_, err := s.commands.SubmitBid(context.Background(), "never-issued", "25000")
	s.Require().ErrorIs(err, errs.ErrTokenNotFound)
}

func (s *QuickBidTestSuite) TestSubmitBid_ExpiredToken() {
	s.issueToken("tok-old", time.Hour)
	s.clock.Add(2 * time.Hour)

	_, err := s.commands.SubmitBid(context.Background(), "tok-old", "25000")
	s.Require().ErrorIs(err, errs.ErrTokenExpired)
	s.Empty(s.state.offers)
}

func (s *QuickBidTestSuite) TestSubmitBid_TokenReuse() {
	s.issueToken("tok-1", time.Hour)

	_, err := s.commands.SubmitBid(context.Background(), "tok-1", "25000")
	s.Require().NoError(err)

	_, err = s.commands.SubmitBid(context.Background(), "tok-1", "30000")
	s.Require().ErrorIs(err, errs.ErrTokenUsed)

	// The losing submission must not add a second offer.
	s.Len(s.state.offers, 1)
}

func (s *QuickBidTestSuite) TestSubmitBid_DuplicateOfferRollsBackConsume() {
	s.issueToken("tok-1", time.Hour)
	s.issueToken("tok-2", time.Hour)

	_, err := s.commands.SubmitBid(context.Background(), "tok-1", "25000")
	s.Require().NoError(err)

	// A second token for the same buyer and request hits the uniqueness
	// constraint; the whole transaction, including the consume, rolls back.
	_, err = s.commands.SubmitBid(context.Background(), "tok-2", "30000")
	s.Require().ErrorIs(err, errs.ErrDuplicateOffer)

	s.Len(s.state.offers, 1)
	s.False(s.state.tokens["tok-2"].IsUsed)
}
