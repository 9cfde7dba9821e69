package mapping

import (
	"database/sql"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// An empty payment method is stored as NULL.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		AccountID:         d.AccountID,
		UserID:            d.UserID,
		Date:              d.Date,
		Amount:            d.Amount,
		PaymentMethod:     nullString(string(d.PaymentMethod)),
		WalletDestination: models.WalletType(d.WalletDestination),
		Detail:            string(d.Detail),
		Reference:         d.Reference,
		Description:       d.Description,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		AccountID:         m.AccountID,
		UserID:            m.UserID,
		Date:              m.Date,
		Amount:            m.Amount,
		PaymentMethod:     domain.PaymentMethod(m.PaymentMethod.String),
		WalletDestination: domain.WalletType(m.WalletDestination),
		Detail:            domain.TransactionDetail(m.Detail),
		Reference:         m.Reference,
		Description:       m.Description,
		CreatedAt:         m.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
