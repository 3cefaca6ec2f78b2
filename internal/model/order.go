package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enum constants
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPacked    = "packed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

// PaymentStatus enum constants (denormalized onto the order for quick filtering)
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
	PaymentStatusPartial  = "partial"
)

// OrderStatuses lists every valid order status, in lifecycle order.
var OrderStatuses = []string{
	OrderStatusNew, OrderStatusConfirmed, OrderStatusPacked, OrderStatusShipped,
	OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
}

// Order represents a storefront checkout. Total ≈ subtotal − discount + shipping + tax;
// the invariant is kept by the checkout flow, not re-checked here.
type Order struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         *uuid.UUID  `gorm:"type:uuid;index" json:"user_id"` // Nullable: guest checkout
	Profile        *Profile    `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
	OrderNumber    string      `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	Status         string      `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	PaymentMethod  string      `gorm:"type:varchar(30)" json:"payment_method"` // cod, upi, card, netbanking, wallet
	PaymentStatus  string      `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	Subtotal       float64     `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	Discount       float64     `gorm:"type:decimal(12,2);default:0" json:"discount"`
	ShippingCharge float64     `gorm:"type:decimal(12,2);default:0" json:"shipping_charge"`
	Tax            float64     `gorm:"type:decimal(12,2);default:0" json:"tax"`
	Total          float64     `gorm:"type:decimal(12,2);default:0" json:"total"`
	CouponCode     string      `gorm:"type:varchar(50)" json:"coupon_code"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem represents a line item within an Order. ProductID is nullable so historical
// orders survive product deletion; ProductName is captured at purchase time as the fallback.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	ProductName string     `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantName string     `gorm:"type:varchar(100)" json:"variant_name"`
	BundleID    *uuid.UUID `gorm:"type:uuid;index" json:"bundle_id"`
	Quantity    int        `gorm:"type:int;not null" json:"quantity"`
	Price       float64    `gorm:"type:decimal(12,2);not null" json:"price"`
	Total       float64    `gorm:"type:decimal(12,2);not null" json:"total"`
}
