package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory enum constants
const (
	ExpenseCategoryAds       = "ads"
	ExpenseCategoryPackaging = "packaging"
	ExpenseCategoryShipping  = "shipping"
	ExpenseCategoryRent      = "rent"
	ExpenseCategorySalary    = "salary"
	ExpenseCategorySoftware  = "software"
	ExpenseCategoryOther     = "other"
)

// ExpenseCategories lists the accepted categories for validation and report grouping.
var ExpenseCategories = []string{
	ExpenseCategoryAds, ExpenseCategoryPackaging, ExpenseCategoryShipping,
	ExpenseCategoryRent, ExpenseCategorySalary, ExpenseCategorySoftware, ExpenseCategoryOther,
}

// Expense represents an operating cost entry recorded by the back office.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category    string          `gorm:"type:varchar(30);not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	SpentOn     time.Time       `gorm:"type:date;not null;index" json:"spent_on"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
