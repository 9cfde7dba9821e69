package dto_test

import (
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidators(v))
	return v
}

func TestDecimalTags(t *testing.T) {
	v := newValidator(t)

	ok := dto.WithdrawProfitRequest{Amount: decimal.NewFromInt(10), Wallet: "CASH"}
	assert.NoError(t, v.Struct(ok))

	zero := dto.WithdrawProfitRequest{Amount: decimal.Zero, Wallet: "CASH"}
	assert.Error(t, v.Struct(zero))

	item := dto.SaleItemRequest{ProductVariantID: "v1", Quantity: 1, UnitPrice: decimal.Zero}
	assert.NoError(t, v.Struct(item))

	item.UnitPrice = decimal.NewFromInt(-1)
	assert.Error(t, v.Struct(item))
}

func TestTransferRequest_DistinctWallets(t *testing.T) {
	v := newValidator(t)
	req := dto.TransferRequest{From: "BANK", To: "BANK", Amount: decimal.NewFromInt(5)}
	assert.Error(t, v.Struct(req))

	req.To = "CASH"
	assert.NoError(t, v.Struct(req))
}
