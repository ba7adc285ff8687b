package api

import (
	"errors"

	"dealerbid/internal/infra"
	"dealerbid/internal/pkg/errs"
)

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound) ||
		errors.Is(err, errs.ErrBidRequestNotFound) ||
		errors.Is(err, errs.ErrOfferNotFound)
}
