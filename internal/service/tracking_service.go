package service

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/model"
	"storefront/internal/repository"
	ws "storefront/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

type TrackEventRequest struct {
	EventType string          `json:"event_type" binding:"required,oneof=page_view product_view add_to_cart checkout_started order_completed scroll_depth"`
	SessionID string          `json:"session_id" binding:"required"`
	VisitorID string          `json:"visitor_id"`
	ProductID string          `json:"product_id"`
	PagePath  string          `json:"page_path"`
	Metadata  json.RawMessage `json:"metadata"`
}

// --- Interface ---

type TrackingService interface {
	Capture(ctx context.Context, req TrackEventRequest) error
}

type trackingService struct {
	eventRepo   repository.EventRepository
	reportCache *cache.ReportCache
	hub         *ws.Hub
}

func NewTrackingService(eventRepo repository.EventRepository, reportCache *cache.ReportCache, hub *ws.Hub) TrackingService {
	return &trackingService{
		eventRepo:   eventRepo,
		reportCache: reportCache,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *trackingService) Capture(ctx context.Context, req TrackEventRequest) error {
	event := model.AnalyticsEvent{
		EventType: req.EventType,
		SessionID: req.SessionID,
		VisitorID: req.VisitorID,
		PagePath:  req.PagePath,
	}

	if req.ProductID != "" {
		parsed, err := uuid.Parse(req.ProductID)
		if err != nil {
			return fmt.Errorf("invalid product_id: %w", err)
		}
		event.ProductID = &parsed
	}
	if len(req.Metadata) > 0 {
		event.Metadata = string(req.Metadata)
	}

	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	// Page views and cart events arrive at storefront traffic rates; only completed
	// purchases are worth waking the dashboards for. The rest age out with the cache TTL.
	if req.EventType == model.EventOrderCompleted {
		s.reportCache.InvalidateAll(ctx)
		s.hub.NotifyReportsInvalidate("events")
	}
	return nil
}
