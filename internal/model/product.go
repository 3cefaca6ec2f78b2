package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLowStockThreshold applies when a product does not override its own threshold.
const DefaultLowStockThreshold = 5

// Product represents a catalog item. Soft-deleted products keep their id so old order
// items still resolve; reports fall back to the captured product name when they don't.
type Product struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Category          string         `gorm:"type:varchar(100);index" json:"category"`
	Price             float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity          int            `gorm:"type:int;default:0;not null" json:"quantity"`
	LowStockThreshold int            `gorm:"type:int;default:5;not null" json:"low_stock_threshold"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
