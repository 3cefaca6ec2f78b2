package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/report"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reportSource adapts the gorm models to the row types the report engine consumes.
// All reads are window-scoped where it makes sense (orders, payments, deliveries,
// expenses, events) and catalog-wide otherwise (profiles, products). Numeric coercion
// happens here so builders downstream never see decimals or NULLs.
type reportSource struct {
	db *gorm.DB
}

func NewReportSource(db *gorm.DB) report.Source {
	return &reportSource{db: db}
}

func (s *reportSource) Orders(ctx context.Context, w report.Window, status string) ([]report.Order, error) {
	q := GetDB(ctx, s.db).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", w.Since, w.Until)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []model.Order
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	out := make([]report.Order, 0, len(rows))
	for _, o := range rows {
		items := make([]report.OrderItem, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, report.OrderItem{
				ProductID:   uuidString(it.ProductID),
				ProductName: it.ProductName,
				VariantName: it.VariantName,
				BundleID:    uuidString(it.BundleID),
				Quantity:    it.Quantity,
				Price:       it.Price,
				Total:       it.Total,
			})
		}
		out = append(out, report.Order{
			ID:             o.ID.String(),
			UserID:         uuidString(o.UserID),
			OrderNumber:    o.OrderNumber,
			Status:         o.Status,
			PaymentMethod:  o.PaymentMethod,
			PaymentStatus:  o.PaymentStatus,
			Subtotal:       o.Subtotal,
			Discount:       o.Discount,
			ShippingCharge: o.ShippingCharge,
			Tax:            o.Tax,
			Total:          o.Total,
			CouponCode:     o.CouponCode,
			CreatedAt:      o.CreatedAt,
			Items:          items,
		})
	}
	return out, nil
}

func (s *reportSource) Payments(ctx context.Context, w report.Window) ([]report.Payment, error) {
	var rows []model.Payment
	if err := GetDB(ctx, s.db).
		Where("created_at >= ? AND created_at < ?", w.Since, w.Until).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	out := make([]report.Payment, 0, len(rows))
	for _, p := range rows {
		out = append(out, report.Payment{
			OrderID:      p.OrderID.String(),
			Method:       p.Method,
			Status:       p.Status,
			Amount:       p.Amount.InexactFloat64(),
			RefundAmount: p.RefundAmount.InexactFloat64(),
			RefundReason: p.RefundReason,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out, nil
}

func (s *reportSource) Deliveries(ctx context.Context, w report.Window) ([]report.Delivery, error) {
	var rows []model.Delivery
	if err := GetDB(ctx, s.db).
		Where("created_at >= ? AND created_at < ?", w.Since, w.Until).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch deliveries: %w", err)
	}
	out := make([]report.Delivery, 0, len(rows))
	for _, d := range rows {
		out = append(out, report.Delivery{
			OrderID:      d.OrderID.String(),
			Status:       d.Status,
			PartnerName:  d.PartnerName,
			IsCOD:        d.IsCOD,
			CODAmount:    d.CODAmount.InexactFloat64(),
			CODCollected: d.CODCollected,
			DeliveredAt:  d.DeliveredAt,
			CreatedAt:    d.CreatedAt,
		})
	}
	return out, nil
}

func (s *reportSource) Expenses(ctx context.Context, w report.Window) ([]report.Expense, error) {
	var rows []model.Expense
	if err := GetDB(ctx, s.db).
		Where("spent_on >= ? AND spent_on < ?", w.Since, w.Until).
		Order("spent_on ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	out := make([]report.Expense, 0, len(rows))
	for _, e := range rows {
		out = append(out, report.Expense{
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount.InexactFloat64(),
			SpentOn:     e.SpentOn,
		})
	}
	return out, nil
}

// Profiles returns every customer regardless of window: new-vs-returning needs signup
// dates older than the window to classify correctly.
func (s *reportSource) Profiles(ctx context.Context) ([]report.Profile, error) {
	var rows []model.Profile
	if err := GetDB(ctx, s.db).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	out := make([]report.Profile, 0, len(rows))
	for _, p := range rows {
		out = append(out, report.Profile{
			UserID:    p.UserID.String(),
			FullName:  p.FullName,
			Email:     p.Email,
			IsBlocked: p.IsBlocked,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// Products returns the live catalog. Soft-deleted products are excluded; order items
// referencing them resolve through their captured product name instead.
func (s *reportSource) Products(ctx context.Context) ([]report.Product, error) {
	var rows []model.Product
	if err := GetDB(ctx, s.db).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	out := make([]report.Product, 0, len(rows))
	for _, p := range rows {
		threshold := p.LowStockThreshold
		if threshold <= 0 {
			threshold = model.DefaultLowStockThreshold
		}
		out = append(out, report.Product{
			ID:                p.ID.String(),
			Name:              p.Name,
			Category:          p.Category,
			Price:             p.Price,
			Quantity:          p.Quantity,
			LowStockThreshold: threshold,
		})
	}
	return out, nil
}

func (s *reportSource) Events(ctx context.Context, w report.Window) ([]report.Event, error) {
	var rows []model.AnalyticsEvent
	if err := GetDB(ctx, s.db).
		Where("created_at >= ? AND created_at < ?", w.Since, w.Until).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch analytics events: %w", err)
	}
	out := make([]report.Event, 0, len(rows))
	for _, e := range rows {
		out = append(out, report.Event{
			EventType: e.EventType,
			SessionID: e.SessionID,
			VisitorID: e.VisitorID,
			ProductID: uuidString(e.ProductID),
			PagePath:  e.PagePath,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
