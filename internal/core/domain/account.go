package domain

// WalletType identifies where money physically sits.
type WalletType string

const (
	WalletBank WalletType = "BANK"
	WalletCash WalletType = "CASH"
)

// Wallets lists every wallet an owner has, in reporting order.
var Wallets = []WalletType{WalletBank, WalletCash}

// IsValid reports whether w is a known wallet.
func (w WalletType) IsValid() bool {
	return w == WalletBank || w == WalletCash
}

// Account is the per-wallet container of an owner's transactions.
// Its balance is never stored; it is the sum of the cash-affecting
// transactions routed to the wallet.
type Account struct {
	AccountID  string     `json:"accountID"`
	UserID     string     `json:"userID"`
	WalletType WalletType `json:"walletType"`
	AuditFields
}
