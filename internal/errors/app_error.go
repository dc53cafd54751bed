package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeDuplicateEntry     = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError    = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeSignatureInvalid   = "SIGNATURE_INVALID"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InvalidCouponError(message string) *AppError {
	return NewAppError(ErrCodeInvalidCoupon, message, http.StatusBadRequest)
}

func SignatureInvalidError(message string) *AppError {
	return NewAppError(ErrCodeSignatureInvalid, message, http.StatusBadRequest)
}

func ServiceUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

// ProductNotFoundError names the product a cart or checkout referenced but
// the catalog no longer has.
func ProductNotFoundError(productID uuid.UUID) *AppError {
	return NotFoundError(fmt.Sprintf("No product for this id %s", productID)).WithDetail(productID.String())
}

func InsufficientStockError(productID uuid.UUID) *AppError {
	return NewAppError(ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product %s", productID), http.StatusConflict).WithDetail(productID.String())
}

func InvalidTransitionError(from, to string) *AppError {
	return NewAppError(ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot move order from %s to %s", from, to), http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
