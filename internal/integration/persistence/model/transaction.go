// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_dealer_created,priority:1"`
	ListingID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiptNumber    string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Vehicle          string          `gorm:"type:varchar(120);not null"`
	Buyer            string          `gorm:"type:varchar(120);not null"`
	PaymentMethod    string          `gorm:"type:varchar(10);not null;index"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DownPayment      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TandaJadi        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Collected        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RemainingPayment decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Profit           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt        time.Time       `gorm:"not null;index:idx_transactions_dealer_created,priority:2"`
	UpdatedAt        time.Time       `gorm:"not null"`

	Listing *ListingModel `gorm:"foreignKey:ListingID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:               m.ID,
		DealerID:         m.DealerID,
		ListingID:        m.ListingID,
		ReceiptNumber:    m.ReceiptNumber,
		Vehicle:          m.Vehicle,
		Buyer:            m.Buyer,
		PaymentMethod:    entity.PaymentMethod(m.PaymentMethod),
		TotalPrice:       m.TotalPrice,
		DownPayment:      m.DownPayment,
		TandaJadi:        m.TandaJadi,
		Collected:        m.Collected,
		RemainingPayment: m.RemainingPayment,
		Profit:           m.Profit,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:               transaction.ID,
		DealerID:         transaction.DealerID,
		ListingID:        transaction.ListingID,
		ReceiptNumber:    transaction.ReceiptNumber,
		Vehicle:          transaction.Vehicle,
		Buyer:            transaction.Buyer,
		PaymentMethod:    string(transaction.PaymentMethod),
		TotalPrice:       transaction.TotalPrice,
		DownPayment:      transaction.DownPayment,
		TandaJadi:        transaction.TandaJadi,
		Collected:        transaction.Collected,
		RemainingPayment: transaction.RemainingPayment,
		Profit:           transaction.Profit,
		CreatedAt:        transaction.CreatedAt,
		UpdatedAt:        transaction.UpdatedAt,
	}
}
