package repository

import (
	"context"

	"gorm.io/gorm"

	"field-service/internal/model"
)

type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

func (r *MeasurementRepository) Insert(ctx context.Context, m *model.Measurement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MeasurementRepository) ListByArea(ctx context.Context, areaID string) ([]model.Measurement, error) {
	var measurements []model.Measurement
	err := r.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("sequence_in_area ASC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	return measurements, nil
}

func (r *MeasurementRepository) MaxSequenceForArea(ctx context.Context, areaID string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.Measurement{}).
		Where("area_id = ?", areaID).
		Select("COALESCE(MAX(sequence_in_area), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}
