package mapping

import (
	"bankcore/internal/core/domain"
	"bankcore/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountNumber: d.AccountNumber,
		Type:          models.TransactionType(d.Type),
		Amount:        d.Amount,
		Message:       d.Message,
		TransferTo:    d.TransferTo,
		MakerUserID:   d.MakerUserID,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountNumber: m.AccountNumber,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Message:       m.Message,
		TransferTo:    m.TransferTo,
		MakerUserID:   m.MakerUserID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToDomainAccountEvent converts a model AccountEvent to a domain AccountEvent
func ToDomainAccountEvent(m models.AccountEvent) domain.AccountEvent {
	return domain.AccountEvent{
		EventID:       m.EventID,
		AccountNumber: m.AccountNumber,
		Message:       m.Message,
		CreatedAt:     m.CreatedAt,
	}
}
