package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("request body cannot be empty")
	ErrTrailingData = errors.New("request body must hold a single JSON object")
)

// DecodeJSONBody reads at most maxBodyBytes and rejects bodies carrying
// more than one JSON value.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			slog.Warn("Empty request body", slog.String("endpoint", r.URL.Path))

			return ErrEmptyBody
		}

		slog.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)

		return fmt.Errorf("invalid JSON format: %w", err)
	}

	if decoder.More() {
		return ErrTrailingData
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		slog.Warn("User input validation failed", slog.String("error", validationErrs.Error()))

		return fmt.Errorf("validation error: %w", validationErrs)
	}

	slog.Error("Unexpected validation error", slog.String("error", err.Error()))

	return fmt.Errorf("unexpected validation error: %w", err)
}
