package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItem_ReceiveStock(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("weighted average", func(t *testing.T) {
		item := domain.InventoryItem{ProductVariantID: "v1"}
		require.NoError(t, item.ReceiveStock(10, decimal.NewFromInt(50), at))
		require.NoError(t, item.ReceiveStock(10, decimal.NewFromInt(80), at))

		assert.Equal(t, 20, item.Quantity)
		assert.True(t, decimal.NewFromInt(65).Equal(item.AverageCost), item.AverageCost.String())
		assert.True(t, decimal.NewFromInt(80).Equal(item.LastPurchasePrice))
		require.NotNil(t, item.LastPurchaseDate)
	})

	t.Run("empty stock takes the purchase price", func(t *testing.T) {
		item := domain.InventoryItem{AverageCost: decimal.NewFromInt(999)}
		require.NoError(t, item.ReceiveStock(3, decimal.RequireFromString("12.5"), at))
		assert.True(t, decimal.RequireFromString("12.5").Equal(item.AverageCost))
	})

	t.Run("rounds to four places", func(t *testing.T) {
		item := domain.InventoryItem{}
		require.NoError(t, item.ReceiveStock(1, decimal.NewFromInt(10), at))
		require.NoError(t, item.ReceiveStock(2, decimal.NewFromInt(11), at))
		assert.Equal(t, "10.6667", item.AverageCost.StringFixed(4))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := domain.InventoryItem{}
		err := item.ReceiveStock(0, decimal.NewFromInt(1), at)
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		item := domain.InventoryItem{}
		err := item.ReceiveStock(1, decimal.NewFromInt(-1), at)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestInventoryItem_ReserveForSale(t *testing.T) {
	item := domain.InventoryItem{ProductVariantID: "v7", Quantity: 5, AverageCost: decimal.NewFromInt(20)}

	err := item.ReserveForSale(6)
	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "v7", stockErr.VariantID)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Required)
	assert.Equal(t, 5, item.Quantity)

	require.NoError(t, item.ReserveForSale(5))
	assert.Equal(t, 0, item.Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(item.SnapshotCostBasis()))
}

func TestInventoryItem_ReturnToStock(t *testing.T) {
	item := domain.InventoryItem{Quantity: 2, AverageCost: decimal.NewFromInt(30)}
	require.NoError(t, item.ReturnToStock(3))
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(item.AverageCost))
	assert.True(t, decimal.NewFromInt(150).Equal(item.StockValue()))
	assert.ErrorIs(t, item.ReturnToStock(-1), apperrors.ErrInvalidQuantity)
}
