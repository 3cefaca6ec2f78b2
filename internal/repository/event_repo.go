package repository

import (
	"context"

	"storefront/internal/model"

	"gorm.io/gorm"
)

// EventRepository persists raw storefront tracking events. Events are append-only; the
// report engine reads them back in bulk through the report source.
type EventRepository interface {
	Create(ctx context.Context, event *model.AnalyticsEvent) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.AnalyticsEvent) error {
	return GetDB(ctx, r.db).Create(event).Error
}
