package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

// requireClaims writes a 401 when the request carries no authenticated user.
// On success the returned logger is tagged with the caller's id.
func requireClaims(w http.ResponseWriter, r *http.Request, action string) (*models.Claims, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized attempt: missing user claims", slog.String("action", action))
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, logger, false
	}

	return claims, logger.With(slog.String("userID", claims.UserID.String())), true
}
