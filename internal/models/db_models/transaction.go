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
	UserID      uuid.UUID         `gorm:"index"`
	AmountMinor int64             // 999 = $9.99
	Currency    string            `gorm:"size:3"`
	Status      TransactionStatus `gorm:"size:16;index"`

	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"uniqueIndex"` // idempotency across webhooks

	PaidAt *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
