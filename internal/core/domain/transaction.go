package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how money entered or left the business.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentPix          PaymentMethod = "PIX"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	// PaymentStoreCredit settles part of an exchange with the value of the
	// returned goods. It never moves money and never produces a ledger row.
	PaymentStoreCredit PaymentMethod = "STORE_CREDIT"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentDebitCard, PaymentCreditCard, PaymentBankTransfer, PaymentStoreCredit:
		return true
	}
	return false
}

// IsMonetary reports whether the method moves real money.
func (m PaymentMethod) IsMonetary() bool {
	return m.IsValid() && m != PaymentStoreCredit
}

// Wallet returns the wallet a payment method settles into.
func (m PaymentMethod) Wallet() WalletType {
	if m == PaymentCash {
		return WalletCash
	}
	return WalletBank
}

// Transaction is an immutable ledger entry. Positive amounts are inflows,
// negative amounts outflows.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	AccountID         string            `json:"accountID"`
	UserID            string            `json:"userID"`
	Date              time.Time         `json:"date"`
	Amount            decimal.Decimal   `json:"amount"`
	PaymentMethod     PaymentMethod     `json:"paymentMethod"`
	WalletDestination WalletType        `json:"walletDestination"`
	Detail            TransactionDetail `json:"detail"`
	Reference         string            `json:"reference"`
	Description       string            `json:"description"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// AffectsProfit reports whether the entry counts toward net profit.
func (t Transaction) AffectsProfit() bool {
	return Classify(t.Detail).AffectsProfit
}

// AffectsCash reports whether the entry changes a wallet balance.
func (t Transaction) AffectsCash() bool {
	return Classify(t.Detail).AffectsCash
}

// IsVisible reports whether the entry is shown to the owner. COGS rows are an
// internal accounting artifact.
func (t Transaction) IsVisible() bool {
	return t.Detail != DetailCostOfGoodsSold
}

// Reference prefixes used to correlate ledger rows with their origin.
const (
	RefSale          = "SALE#"
	RefSaleCancel    = "SALE_CANCEL#"
	RefExchange      = "EXCHANGE#"
	RefPurchaseOrder = "PO#"
	RefTransfer      = "TRANSFER#"
	RefReinvestment  = "REINVEST#"
)
