package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents a payment attempt (or refund) against an order. Amounts are stored
// as decimals; the reporting layer reads them back as floats after coercion.
type Payment struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Method       string          `gorm:"type:varchar(30);not null" json:"method"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"refund_amount"`
	RefundReason string          `gorm:"type:varchar(255)" json:"refund_reason"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
