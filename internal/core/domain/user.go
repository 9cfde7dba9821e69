package domain

// User is the business owner. Each user owns exactly one inventory and one
// account per wallet.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}

// Inventory groups the stock positions of one owner.
type Inventory struct {
	InventoryID string `json:"inventoryID"`
	UserID      string `json:"userID"`
	AuditFields
}

// OwnerContext carries the resolved owner, inventory and wallet accounts
// through a single operation so nothing has to be looked up again.
type OwnerContext struct {
	User      User
	Inventory Inventory
	Accounts  map[WalletType]Account
}

// AccountFor returns the account bound to the wallet.
func (o OwnerContext) AccountFor(w WalletType) (Account, bool) {
	acc, ok := o.Accounts[w]
	return acc, ok
}
