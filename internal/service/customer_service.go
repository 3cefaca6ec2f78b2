package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/model"
	"storefront/internal/repository"
	ws "storefront/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type BlockCustomerRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type CustomerResponse struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	IsBlocked    bool   `json:"is_blocked"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type CustomerService interface {
	ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error)
	SetBlocked(ctx context.Context, actorID, customerID string, blocked bool) (CustomerResponse, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	reportCache  *cache.ReportCache
	hub          *ws.Hub
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	reportCache *cache.ReportCache,
	hub *ws.Hub,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		reportCache:  reportCache,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *customerService) ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	profiles, total, err := s.customerRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	result := make([]CustomerResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, toCustomerResponse(p))
	}
	return result, total, nil
}

func (s *customerService) SetBlocked(ctx context.Context, actorID, customerID string, blocked bool) (CustomerResponse, error) {
	userID, err := uuid.Parse(customerID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("invalid customer id: %w", err)
	}

	profile, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerResponse{}, errors.New("customer not found")
		}
		return CustomerResponse{}, fmt.Errorf("database error: %w", err)
	}

	action := model.ActionBlockCustomer
	if !blocked {
		action = model.ActionUnblockCustomer
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.customerRepo.SetBlocked(txCtx, userID, blocked); updateErr != nil {
			return fmt.Errorf("failed to update customer: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"blocked": blocked})
		audit := &model.AuditLog{
			UserID:     parseUserID(actorID),
			Action:     action,
			EntityID:   profile.UserID.String(),
			EntityName: profile.FullName,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})

	if err != nil {
		return CustomerResponse{}, err
	}

	s.reportCache.InvalidateAll(ctx)
	s.hub.NotifyReportsInvalidate("customers")

	profile.IsBlocked = blocked
	return toCustomerResponse(*profile), nil
}

// --- Helpers ---

func toCustomerResponse(p model.Profile) CustomerResponse {
	return CustomerResponse{
		UserID:       p.UserID.String(),
		FullName:     p.FullName,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		IsBlocked:    p.IsBlocked,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
