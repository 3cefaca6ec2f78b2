package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType enum constants
const (
	EventPageView        = "page_view"
	EventProductView     = "product_view"
	EventAddToCart       = "add_to_cart"
	EventCheckoutStarted = "checkout_started"
	EventOrderCompleted  = "order_completed"
	EventScrollDepth     = "scroll_depth"
)

// EventTypes lists the event types the tracking endpoint accepts.
var EventTypes = []string{
	EventPageView, EventProductView, EventAddToCart,
	EventCheckoutStarted, EventOrderCompleted, EventScrollDepth,
}

// AnalyticsEvent is one raw storefront tracking event. SessionID identifies a browsing
// session (funnel stages deduplicate on it); VisitorID persists across sessions.
type AnalyticsEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventType string     `gorm:"type:varchar(30);not null;index" json:"event_type"`
	SessionID string     `gorm:"type:varchar(64);not null;index" json:"session_id"`
	VisitorID string     `gorm:"type:varchar(64);index" json:"visitor_id"`
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	PagePath  string     `gorm:"type:varchar(255)" json:"page_path"`
	Metadata  string     `gorm:"type:jsonb" json:"metadata"` // Serialized JSON payload from the storefront
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}
