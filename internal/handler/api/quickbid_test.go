//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dealerbid/internal/handler/api"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubQuickBidCommands struct {
	validation  *commands.TokenValidation
	validateErr error

	submitResult *commands.SubmitBidResult
	submitErr    error

	gotToken  string
	gotAmount string
}

func (s *stubQuickBidCommands) ValidateToken(_ context.Context, tokenValue string) (*commands.TokenValidation, error) {
	s.gotToken = tokenValue
	return s.validation, s.validateErr
}

func (s *stubQuickBidCommands) SubmitBid(_ context.Context, tokenValue, rawAmount string) (*commands.SubmitBidResult, error) {
	s.gotToken = tokenValue
	s.gotAmount = rawAmount
	return s.submitResult, s.submitErr
}

type QuickBidHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *stubQuickBidCommands
}

func TestQuickBidHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QuickBidHandlerTestSuite))
}

func (s *QuickBidHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.stub = &stubQuickBidCommands{}

	handler := api.NewQuickBidHandler(s.stub)
	s.router.GET("/api/quick-bid", handler.ValidateToken)
	s.router.POST("/api/quick-bid", handler.SubmitBid)
}

func (s *QuickBidHandlerTestSuite) TestValidateToken_Valid() {
	bidRequestID := uuid.New()
	buyerID := uuid.New()
	s.stub.validation = &commands.TokenValidation{
		IsValid:        true,
		BidRequestID:   bidRequestID,
		BuyerID:        buyerID,
		VehicleSummary: "2021 Toyota Camry",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quick-bid?token=tok-1", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("tok-1", s.stub.gotToken)
	s.Contains(w.Body.String(), `"is_valid":true`)
	s.Contains(w.Body.String(), `"bid_request_id":"`+bidRequestID.String()+`"`)
	s.Contains(w.Body.String(), `"buyer_id":"`+buyerID.String()+`"`)
	s.Contains(w.Body.String(), "2021 Toyota Camry")
}

func (s *QuickBidHandlerTestSuite) TestValidateToken_Invalid() {
	s.stub.validation = &commands.TokenValidation{
		IsValid: false,
		Reason:  commands.ReasonExpired,
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quick-bid?token=tok-old", nil)
	s.router.ServeHTTP(w, req)

	// Invalid tokens still answer 200; the body carries the verdict.
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"is_valid":false`)
	s.Contains(w.Body.String(), commands.ReasonExpired)
}

func (s *QuickBidHandlerTestSuite) postBid(body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quick-bid", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *QuickBidHandlerTestSuite) TestSubmitBid_Created() {
	s.stub.submitResult = &commands.SubmitBidResult{
		OfferID:      uuid.New(),
		BidRequestID: uuid.New(),
		Amount:       25000,
	}

	w := s.postBid(`{"token":"tok-1","amount":"25,000"}`)

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("tok-1", s.stub.gotToken)
	s.Equal("25,000", s.stub.gotAmount)
	s.Contains(w.Body.String(), `"amount":25000`)
}

func (s *QuickBidHandlerTestSuite) TestSubmitBid_MissingFields() {
	w := s.postBid(`{"token":"tok-1"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *QuickBidHandlerTestSuite) TestSubmitBid_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid amount", err: errs.ErrInvalidAmount, wantStatus: http.StatusBadRequest},
		{name: "unknown token", err: errs.ErrTokenNotFound, wantStatus: http.StatusBadRequest},
		{name: "expired token", err: errs.ErrTokenExpired, wantStatus: http.StatusGone},
		{name: "used token", err: errs.ErrTokenUsed, wantStatus: http.StatusConflict},
		{name: "duplicate offer", err: errs.ErrDuplicateOffer, wantStatus: http.StatusConflict},
		{name: "backend failure", err: errs.ErrDatabaseOperationFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.stub.submitResult = nil
			s.stub.submitErr = tt.err

			w := s.postBid(`{"token":"tok-1","amount":"25000"}`)
			s.Equal(tt.wantStatus, w.Code)
		})
	}
}
