package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"field-service/internal/model"
	"field-service/internal/service"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(ctx context.Context, area *model.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *AreaRepository) GetByID(ctx context.Context, id string) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepository) Update(ctx context.Context, area *model.Area) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *AreaRepository) List(ctx context.Context, filter service.AreaListFilter) ([]model.Area, error) {
	var areas []model.Area
	query := r.db.WithContext(ctx).Model(&model.Area{})

	if filter.OwnerUsername != nil {
		query = query.Where("owner_username = ?", *filter.OwnerUsername)
	}
	if filter.DeviceID != nil {
		query = query.Where("device_id = ?", *filter.DeviceID)
	}

	if err := query.Order("created_at DESC").Find(&areas).Error; err != nil {
		return nil, err
	}

	return areas, nil
}
