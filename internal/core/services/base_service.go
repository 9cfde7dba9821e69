package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportInvalidator drops cached reports after an owner's data changed.
type ReportInvalidator interface {
	InvalidateOwner(ctx context.Context, userEmail string)
}

// BaseService provides common functionality for all services
type BaseService struct {
	Clock       func() time.Time
	Invalidator ReportInvalidator
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// afterWrite invalidates the owner's cached reports.
func (s *BaseService) afterWrite(ctx context.Context, owner domain.OwnerContext) {
	if s.Invalidator != nil {
		s.Invalidator.InvalidateOwner(ctx, owner.User.Email)
	}
}

// entry builds a ledger row bound to the owner's account for wallet.
func entry(owner domain.OwnerContext, wallet domain.WalletType, method domain.PaymentMethod, detail domain.TransactionDetail, amount decimal.Decimal, at time.Time, reference, description string) (domain.Transaction, error) {
	account, ok := owner.AccountFor(wallet)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: owner %s has no %s account", apperrors.ErrInternal, owner.User.UserID, wallet)
	}
	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         account.AccountID,
		UserID:            owner.User.UserID,
		Date:              at,
		Amount:            amount,
		PaymentMethod:     method,
		WalletDestination: wallet,
		Detail:            detail,
		Reference:         reference,
		Description:       description,
		CreatedAt:         at,
	}, nil
}

// methodForWallet is the payment method recorded on internal movements.
func methodForWallet(w domain.WalletType) domain.PaymentMethod {
	if w == domain.WalletCash {
		return domain.PaymentCash
	}
	return domain.PaymentBankTransfer
}

func auditFields(userID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{CreatedAt: at, CreatedBy: userID, LastUpdatedAt: at, LastUpdatedBy: userID}
}
