package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionUpdateOrderStatus = "UPDATE_ORDER_STATUS"
	ActionCreateExpense     = "CREATE_EXPENSE"
	ActionBlockCustomer     = "BLOCK_CUSTOMER"
	ActionUnblockCustomer   = "UNBLOCK_CUSTOMER"
	ActionCreateUser        = "CREATE_USER"
)

// AuditLog tracks Who, What, and When for critical back-office changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
