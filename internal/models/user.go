package models

// User is a row of the users table.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}

// Inventory is a row of the inventories table. Each user owns exactly one.
type Inventory struct {
	InventoryID string `db:"inventory_id"`
	UserID      string `db:"user_id"`
	AuditFields
}
