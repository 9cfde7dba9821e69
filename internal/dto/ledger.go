package dto

import (
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Entry directions. Investments default to IN, every other manual detail to OUT.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// RecordEntryRequest records a manual ledger entry. Amount is a magnitude.
type RecordEntryRequest struct {
	Detail        domain.TransactionDetail `json:"detail" binding:"required,oneof=OWNER_INVESTMENT RENT ELECTRICITY MACHINE_PURCHASE OTHER MONEY_INVESTMENT"`
	Amount        decimal.Decimal          `json:"amount" binding:"dgt0"`
	PaymentMethod domain.PaymentMethod     `json:"paymentMethod" binding:"required,oneof=CASH PIX DEBIT_CARD CREDIT_CARD BANK_TRANSFER"`
	Direction     string                   `json:"direction,omitempty" binding:"omitempty,oneof=IN OUT"`
	Description   string                   `json:"description" binding:"max=500"`
	Date          *time.Time               `json:"date,omitempty"`
}

// TransferRequest moves money between the owner's wallets.
type TransferRequest struct {
	From   domain.WalletType `json:"from" binding:"required,oneof=BANK CASH"`
	To     domain.WalletType `json:"to" binding:"required,oneof=BANK CASH,nefield=From"`
	Amount decimal.Decimal   `json:"amount" binding:"dgt0"`
}

// WithdrawProfitRequest takes profit out of a wallet.
type WithdrawProfitRequest struct {
	Amount decimal.Decimal   `json:"amount" binding:"dgt0"`
	Wallet domain.WalletType `json:"wallet" binding:"required,oneof=BANK CASH"`
}

// ReinvestProfitRequest turns profit into invested capital.
type ReinvestProfitRequest struct {
	Amount     decimal.Decimal   `json:"amount"`
	FromWallet domain.WalletType `json:"fromWallet"`
	ToWallet   domain.WalletType `json:"toWallet"`
}

// ListTransactionsParams bounds a ledger listing by date (YYYY-MM-DD, to exclusive).
type ListTransactionsParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsResponse wraps the visible ledger rows.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// AmountResponse wraps a single figure.
type AmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}
