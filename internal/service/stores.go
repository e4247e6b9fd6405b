package service

import (
	"context"

	"github.com/google/uuid"

	"field-service/internal/model"
)

// Store interfaces abstract the persistence backend. The gorm repositories
// implement them; tests substitute in-memory fakes. Lookups return (nil, nil)
// when the record does not exist.

type AreaListFilter struct {
	OwnerUsername *string
	DeviceID      *string
}

type AreaStore interface {
	Create(ctx context.Context, area *model.Area) error
	GetByID(ctx context.Context, id string) (*model.Area, error)
	Update(ctx context.Context, area *model.Area) error
	List(ctx context.Context, filter AreaListFilter) ([]model.Area, error)
}

type MeasurementStore interface {
	Insert(ctx context.Context, m *model.Measurement) error
	ListByArea(ctx context.Context, areaID string) ([]model.Measurement, error)
	MaxSequenceForArea(ctx context.Context, areaID string) (int, error)
}

type DeviceStore interface {
	Create(ctx context.Context, device *model.Device) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Device, error)
	ListByOwner(ctx context.Context, ownerUsername string) ([]model.Device, error)
}

// LocationResolver turns a coordinate into a human-readable place name.
// Resolution is best effort; failures never block a capture.
type LocationResolver interface {
	Resolve(ctx context.Context, lat, lng float64) (string, error)
}
