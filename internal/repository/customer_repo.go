package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Profile, int64, error)
	SetBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := GetDB(ctx, r.db).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *customerRepository) List(ctx context.Context, search string, page, limit int) ([]model.Profile, int64, error) {
	var profiles []model.Profile
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Profile{})
	if search != "" {
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR mobile_number ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *customerRepository) SetBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	return GetDB(ctx, r.db).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("is_blocked", blocked).Error
}
