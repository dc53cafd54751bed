package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, appErrors.ValidationError("Invalid input data"))

		return false
	}

	return true
}

// ParseID reads a UUID path parameter.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, appErrors.AddValidationError(name, "is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.AddValidationError(name, "must be a valid UUID").WithError(err)
	}

	return id, nil
}

// ParsePagination reads page and size query parameters, falling back to the
// defaults for missing values and clamping the size.
func ParsePagination(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page", DefaultPage)
	if err != nil {
		return 0, 0, err
	}

	size, err := queryInt(r, "size", DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}

	if page < 1 {
		return 0, 0, appErrors.AddValidationError("page", "must be at least 1")
	}

	if size < 1 {
		return 0, 0, appErrors.AddValidationError("size", "must be at least 1")
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.AddValidationError(key, "must be a number").WithError(err)
	}

	return value, nil
}
