package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// StockDetails tells the client which variant ran short.
type StockDetails struct {
	VariantID string `json:"variantID"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

func statusForKind(kind string) int {
	switch kind {
	case "RESOURCE_NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR", "INVALID_QUANTITY", "PAYMENT_MISMATCH", "INVALID_REINVESTMENT":
		return http.StatusBadRequest
	case "INSUFFICIENT_STOCK", "INSUFFICIENT_FUNDS", "INSUFFICIENT_PROFIT":
		return http.StatusUnprocessableEntity
	case "DUPLICATE", "CONFLICT", "ALREADY_CANCELLED":
		return http.StatusConflict
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "FORBIDDEN":
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Internal failures are logged
// and answered with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	kind := apperrors.Kind(err)
	status := statusForKind(kind)
	resp := ErrorResponse{Error: kind, Message: err.Error()}

	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		resp.Details = StockDetails{VariantID: stockErr.VariantID, Available: stockErr.Available, Required: stockErr.Required}
	}

	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		resp.Message = "Failed to " + action
	} else {
		logger.Warn("Rejected request to "+action, slog.String("kind", kind), slog.String("error", err.Error()))
	}
	c.JSON(status, resp)
}

// respondBindError answers a malformed or invalid payload.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "Invalid request: " + err.Error()})
}

// resolveOwner loads the owner context of the authenticated caller. A valid
// token whose owner no longer exists is treated as unauthorized.
func resolveOwner(c *gin.Context, owners portssvc.OwnerSvc) (*domain.OwnerContext, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		logger.Error("Owner e-mail not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "Unauthorized"})
		return nil, false
	}

	owner, err := owners.ResolveOwner(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authenticated owner not found", slog.String("email", email))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "Unknown owner"})
			return nil, false
		}
		respondError(c, logger, err, "resolve owner")
		return nil, false
	}
	return owner, true
}

// ownerEmail returns the e-mail of the authenticated caller.
func ownerEmail(c *gin.Context) (string, bool) {
	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Owner e-mail not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "Unauthorized"})
	}
	return email, ok
}

const dateLayout = "2006-01-02"

// parseDateRange parses optional YYYY-MM-DD bounds, both in UTC.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var fromT, toT *time.Time
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, nil, err
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, nil, err
		}
		toT = &t
	}
	return fromT, toT, nil
}
