package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	AccountID   uuid.UUID  `gorm:"index"`
	BookingID   *uuid.UUID `gorm:"index"`
	AmountMinor int64
	Currency    string            `gorm:"size:3"`
	Status      TransactionStatus `gorm:"type:varchar(16);index"`

	// Gateway fields
	Provider         string `gorm:"index"`
	ProviderTxnID    string `gorm:"index"` // idempotency across webhooks
	PaymentMethodRef string // last4 / token ref (avoid PCI data)

	// Important timestamps (unix seconds)
	PaidAt     *int64
	RefundedAt *int64

	// Raw receipts, webhook payloads, failure reasons, etc.
	Receipt  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account  `gorm:"foreignKey:AccountID"`
	Booking *Booking `gorm:"foreignKey:BookingID"`
}
