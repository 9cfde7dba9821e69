package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger row.
// PaymentMethod is NULL for COGS rows, which are not tied to a tender.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	AccountID         string          `db:"account_id"`
	UserID            string          `db:"user_id"`
	Date              time.Time       `db:"date"`
	Amount            decimal.Decimal `db:"amount"` // Signed: positive inflow, negative outflow
	PaymentMethod     sql.NullString  `db:"payment_method"`
	WalletDestination WalletType      `db:"wallet_destination"`
	Detail            string          `db:"detail"`
	Reference         string          `db:"reference"`
	Description       string          `db:"description"`
	CreatedAt         time.Time       `db:"created_at"`
}
