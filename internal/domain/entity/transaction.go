// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// IsValid reports whether the payment method is one of the known values.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCredit
}

// Transaction represents a sale receipt issued by a dealer.
// It is created when the receipt is issued and only mutated by
// payment-collection events that increase Collected.
type Transaction struct {
	ID               uuid.UUID
	DealerID         uuid.UUID
	ListingID        uuid.UUID
	ReceiptNumber    string
	Vehicle          string
	Buyer            string
	PaymentMethod    PaymentMethod
	TotalPrice       decimal.Decimal
	DownPayment      decimal.Decimal
	TandaJadi        decimal.Decimal // booking deposit
	Collected        decimal.Decimal // amount received to date
	RemainingPayment decimal.Decimal // TotalPrice - Collected, never negative
	Profit           decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTransaction creates a new Transaction entity for a dealer sale.
func NewTransaction(
	dealerID uuid.UUID,
	listingID uuid.UUID,
	receiptNumber string,
	vehicle string,
	buyer string,
	paymentMethod PaymentMethod,
	totalPrice decimal.Decimal,
	downPayment decimal.Decimal,
	tandaJadi decimal.Decimal,
	collected decimal.Decimal,
	profit decimal.Decimal,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:               uuid.New(),
		DealerID:         dealerID,
		ListingID:        listingID,
		ReceiptNumber:    receiptNumber,
		Vehicle:          vehicle,
		Buyer:            buyer,
		PaymentMethod:    paymentMethod,
		TotalPrice:       totalPrice,
		DownPayment:      downPayment,
		TandaJadi:        tandaJadi,
		Collected:        collected,
		RemainingPayment: remainingPayment(totalPrice, collected),
		Profit:           profit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// RecordCollection applies an additional payment-collection event.
func (t *Transaction) RecordCollection(amount decimal.Decimal) {
	t.Collected = t.Collected.Add(amount)
	t.RemainingPayment = remainingPayment(t.TotalPrice, t.Collected)
	t.UpdatedAt = time.Now().UTC()
}

// remainingPayment computes TotalPrice - Collected, floored at zero.
func remainingPayment(totalPrice, collected decimal.Decimal) decimal.Decimal {
	remaining := totalPrice.Sub(collected)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
