package service

import (
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

// storeError maps a failure of the backing store that no operation expects.
// Deadlines surface as 503 so clients know the request may be retried.
// ErrCartGone is wrapped by checkout errors whose cart no longer exists,
// typically because a concurrent checkout of the same cart converted it.
var ErrCartGone = errors.New("cart no longer exists")

func storeError(err error, message string) *appErrors.AppError {
	if utils.IsTimeout(err) {
		return appErrors.ServiceUnavailableError("Request timed out, please retry").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}

func hasCode(err error, codes ...string) bool {
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}

	for _, code := range codes {
		if appErr.Code == code {
			return true
		}
	}

	return false
}
