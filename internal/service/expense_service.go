package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/model"
	"storefront/internal/repository"
	ws "storefront/internal/websocket"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateExpenseRequest struct {
	Category    string `json:"category" binding:"required,oneof=ads packaging shipping rent salary software other"`
	Description string `json:"description"`
	Amount      string `json:"amount" binding:"required"`   // Decimal string
	SpentOn     string `json:"spent_on" binding:"required"` // YYYY-MM-DD
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	SpentOn     string `json:"spent_on"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type ExpenseService interface {
	CreateExpense(ctx context.Context, userID string, req CreateExpenseRequest) (ExpenseResponse, error)
	GetExpenses(ctx context.Context, page, limit int, category string) ([]ExpenseResponse, int64, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	reportCache *cache.ReportCache
	hub         *ws.Hub
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	reportCache *cache.ReportCache,
	hub *ws.Hub,
) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		reportCache: reportCache,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req CreateExpenseRequest) (ExpenseResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ExpenseResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ExpenseResponse{}, fmt.Errorf("amount must be greater than 0")
	}

	spentOn, err := time.Parse("2006-01-02", req.SpentOn)
	if err != nil {
		return ExpenseResponse{}, fmt.Errorf("invalid spent_on date: %w", err)
	}

	expense := model.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		SpentOn:     spentOn,
	}

	userUUID := parseUserID(userID)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.expenseRepo.Create(txCtx, &expense); createErr != nil {
			return fmt.Errorf("failed to create expense: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"category":    req.Category,
			"amount":      req.Amount,
			"spent_on":    req.SpentOn,
			"description": req.Description,
		})
		audit := &model.AuditLog{
			UserID:     userUUID,
			Action:     model.ActionCreateExpense,
			EntityID:   expense.ID.String(),
			EntityName: req.Description,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write expense audit log: %w", auditErr)
		}
		return nil
	})

	if err != nil {
		return ExpenseResponse{}, err
	}

	s.reportCache.InvalidateAll(ctx)
	s.hub.NotifyReportsInvalidate("expenses")

	return toExpenseResponse(expense), nil
}

func (s *expenseService) GetExpenses(ctx context.Context, page, limit int, category string) ([]ExpenseResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	expenses, total, err := s.expenseRepo.List(ctx, page, limit, category)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	result := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, toExpenseResponse(e))
	}
	return result, total, nil
}

// --- Helpers ---

func toExpenseResponse(e model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.StringFixed(2),
		SpentOn:     e.SpentOn.Format("2006-01-02"),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
