package dto

import (
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryItemResponse is a stock position with its value at average cost.
type InventoryItemResponse struct {
	domain.InventoryItem
	StockValue decimal.Decimal `json:"stockValue"`
}

// ToInventoryItemResponses values every position.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i, it := range items {
		out[i] = InventoryItemResponse{InventoryItem: it, StockValue: it.StockValue()}
	}
	return out
}
