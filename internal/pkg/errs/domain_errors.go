package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Bid request errors
	ErrBidRequestNotFound = errors.New("bid request not found")
	ErrBidRequestClosed   = errors.New("bid request already closed")

	// Submission token errors
	ErrTokenNotFound = errors.New("submission token not found")
	ErrTokenExpired  = errors.New("submission token expired")
	ErrTokenUsed     = errors.New("submission token already used")

	// Offer errors
	ErrOfferNotFound  = errors.New("offer not found")
	ErrDuplicateOffer = errors.New("duplicate offer for bid request")
	ErrInvalidAmount  = errors.New("invalid offer amount")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
