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

type OrderFilter struct {
	Status string // one of model.OrderStatuses, or empty for all
	Page   int
	Limit  int
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new confirmed packed shipped delivered cancelled returned"`
}

type OrderItemResponse struct {
	ProductID   string  `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Customer       string              `json:"customer"`
	Status         string              `json:"status"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentStatus  string              `json:"payment_status"`
	Subtotal       float64             `json:"subtotal"`
	Discount       float64             `json:"discount"`
	ShippingCharge float64             `json:"shipping_charge"`
	Tax            float64             `json:"tax"`
	Total          float64             `json:"total"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      string              `json:"created_at"`
}

// --- Interface ---

type OrderService interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]OrderResponse, int64, error)
	GetOrder(ctx context.Context, id string) (OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, userID, id string, req UpdateOrderStatusRequest) (OrderResponse, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	reportCache *cache.ReportCache
	hub         *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	reportCache *cache.ReportCache,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		reportCache: reportCache,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *orderService) ListOrders(ctx context.Context, filter OrderFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	orders, total, err := s.orderRepo.List(ctx, filter.Page, filter.Limit, filter.Status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, errors.New("order not found")
		}
		return OrderResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toOrderResponse(*order), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, userID, id string, req UpdateOrderStatusRequest) (OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, errors.New("order not found")
		}
		return OrderResponse{}, fmt.Errorf("database error: %w", err)
	}

	if err := validateStatusTransition(order.Status, req.Status); err != nil {
		return OrderResponse{}, err
	}

	userUUID := parseUserID(userID)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.orderRepo.UpdateStatus(txCtx, orderID, req.Status); updateErr != nil {
			return fmt.Errorf("failed to update order status: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"order_number": order.OrderNumber,
			"from":         order.Status,
			"to":           req.Status,
		})
		audit := &model.AuditLog{
			UserID:     userUUID,
			Action:     model.ActionUpdateOrderStatus,
			EntityID:   order.ID.String(),
			EntityName: order.OrderNumber,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}

	s.reportCache.InvalidateAll(ctx)
	s.hub.NotifyReportsInvalidate("orders")

	order.Status = req.Status
	return toOrderResponse(*order), nil
}

// --- Helpers ---

// lifecycleRank orders the forward statuses; terminal statuses are handled separately.
var lifecycleRank = map[string]int{
	model.OrderStatusNew:       0,
	model.OrderStatusConfirmed: 1,
	model.OrderStatusPacked:    2,
	model.OrderStatusShipped:   3,
	model.OrderStatusDelivered: 4,
}

// validateStatusTransition allows forward movement through the lifecycle, cancellation
// of anything not yet delivered, and returns only for delivered orders.
func validateStatusTransition(current, next string) error {
	if current == next {
		return fmt.Errorf("order is already %s", current)
	}
	switch next {
	case model.OrderStatusCancelled:
		if current == model.OrderStatusDelivered || current == model.OrderStatusReturned {
			return fmt.Errorf("cannot cancel a %s order", current)
		}
		return nil
	case model.OrderStatusReturned:
		if current != model.OrderStatusDelivered {
			return fmt.Errorf("only delivered orders can be returned, order is %s", current)
		}
		return nil
	}

	curRank, ok := lifecycleRank[current]
	if !ok {
		return fmt.Errorf("order is %s and cannot move to %s", current, next)
	}
	nextRank, ok := lifecycleRank[next]
	if !ok {
		return fmt.Errorf("unknown status %s", next)
	}
	if nextRank <= curRank {
		return fmt.Errorf("cannot move order from %s back to %s", current, next)
	}
	return nil
}

func toOrderResponse(o model.Order) OrderResponse {
	customer := "Guest"
	if o.Profile != nil && o.Profile.FullName != "" {
		customer = o.Profile.FullName
	} else if o.UserID != nil {
		customer = o.UserID.String()
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		item := OrderItemResponse{
			ProductName: it.ProductName,
			VariantName: it.VariantName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		}
		if it.ProductID != nil {
			item.ProductID = it.ProductID.String()
		}
		items = append(items, item)
	}

	return OrderResponse{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		Customer:       customer,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Subtotal:       o.Subtotal,
		Discount:       o.Discount,
		ShippingCharge: o.ShippingCharge,
		Tax:            o.Tax,
		Total:          o.Total,
		CouponCode:     o.CouponCode,
		Items:          items,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
}
