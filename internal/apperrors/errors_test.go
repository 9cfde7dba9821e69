package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"typed stock error", &apperrors.InsufficientStockError{VariantID: "v1", Available: 1, Required: 2}, "INSUFFICIENT_STOCK"},
		{"wrapped payment mismatch", fmt.Errorf("sale: %w", apperrors.ErrPaymentMismatch), "PAYMENT_MISMATCH"},
		{"reinvestment wins over profit", fmt.Errorf("%w: %w", apperrors.ErrInvalidReinvestment, apperrors.ErrInsufficientProfit), "INVALID_REINVESTMENT"},
		{"not found", apperrors.ErrNotFound, "RESOURCE_NOT_FOUND"},
		{"app error", apperrors.NewAppError(500, "db down", errors.New("boom")), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.Kind(tt.err))
		})
	}
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &apperrors.InsufficientStockError{VariantID: "var-9", Available: 3, Required: 5}

	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))
	assert.Equal(t, "insufficient stock for variant var-9: available 3, required 5", err.Error())
}
