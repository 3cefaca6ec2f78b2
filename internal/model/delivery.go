package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus enum constants
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusPicked    = "picked"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Delivery tracks fulfillment of one order by a courier partner, including COD collection.
type Delivery struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PartnerName  string          `gorm:"type:varchar(100)" json:"partner_name"`
	IsCOD        bool            `gorm:"default:false" json:"is_cod"`
	CODAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cod_amount"`
	CODCollected bool            `gorm:"default:false" json:"cod_collected"`
	DeliveredAt  *time.Time      `json:"delivered_at"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
