package models

// WalletType is the wallet an account represents.
type WalletType string

const (
	Bank WalletType = "BANK"
	Cash WalletType = "CASH"
)

// Account represents a wallet account. It carries no balance column; the
// balance is always summed from the transactions table.
type Account struct {
	AccountID  string     `db:"account_id"`
	UserID     string     `db:"user_id"`
	WalletType WalletType `db:"wallet_type"`
	AuditFields
}
