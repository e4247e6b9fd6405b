package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"field-service/internal/agronomy"
	"field-service/internal/model"
	"field-service/internal/spatial"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDeviceMismatch   = errors.New("device does not own this area")
	ErrPositionOutside  = errors.New("position outside area boundary")
	ErrAreaNotConfirmed = errors.New("area boundary is not confirmed")
	ErrAggregation      = errors.New("aggregation failed")
)

type AreaService struct {
	areaStore   AreaStore
	deviceStore DeviceStore
}

func NewAreaService(areaStore AreaStore, deviceStore DeviceStore) *AreaService {
	return &AreaService{
		areaStore:   areaStore,
		deviceStore: deviceStore,
	}
}

type CreateAreaInput struct {
	Name     string
	DeviceID string
	Polygon  []spatial.Point
}

// Create registers a confirmed area from a user-drawn polygon. The polygon
// only needs 3 or more vertices; degenerate (e.g. collinear) rings are
// accepted as drawn.
func (s *AreaService) Create(ctx context.Context, principal model.Principal, input CreateAreaInput) (*model.Area, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: area name required", ErrInvalidInput)
	}

	if len(input.Polygon) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 points", ErrInvalidInput)
	}

	deviceID, err := uuid.Parse(input.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid device id", ErrInvalidInput)
	}

	device, err := s.deviceStore.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("%w: device", ErrNotFound)
	}
	if !principal.CanAccess(device.OwnerUsername) {
		return nil, ErrPermissionDenied
	}

	area := &model.Area{
		ID:            fmt.Sprintf("%s_%s_%d", device.OwnerUsername, deviceID, time.Now().UnixMilli()),
		Name:          name,
		OwnerUsername: device.OwnerUsername,
		DeviceID:      deviceID,
		Polygon:       model.PointList(input.Polygon),
		SampleCount:   0,
	}

	if err := s.areaStore.Create(ctx, area); err != nil {
		return nil, err
	}

	return area, nil
}

func (s *AreaService) Get(ctx context.Context, principal model.Principal, id string) (*model.Area, error) {
	area, err := s.areaStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, ErrNotFound
	}
	if !principal.CanAccess(area.OwnerUsername) {
		return nil, ErrPermissionDenied
	}
	return area, nil
}

// List returns the caller's areas. Admins see every area unless they narrow
// the filter themselves.
func (s *AreaService) List(ctx context.Context, principal model.Principal, filter AreaListFilter) ([]model.Area, error) {
	if !principal.IsAdmin() {
		owner := principal.Username
		filter.OwnerUsername = &owner
	}
	return s.areaStore.List(ctx, filter)
}

// Rename changes the user-facing label. The polygon and ownership fields stay
// immutable.
func (s *AreaService) Rename(ctx context.Context, principal model.Principal, id, name string) (*model.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: area name required", ErrInvalidInput)
	}

	area, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	area.Name = name
	if err := s.areaStore.Update(ctx, area); err != nil {
		return nil, err
	}

	return area, nil
}

type AreaSummary struct {
	Area           *model.Area              `json:"area"`
	Bounds         spatial.BoundingBox      `json:"bounds"`
	Centroid       spatial.Point            `json:"centroid"`
	Averages       *model.Channels          `json:"averages,omitempty"`
	Recommendation *agronomy.Recommendation `json:"recommendation,omitempty"`
}

// Summary bundles the area, its boundary extent and, once samples exist, the
// running averages with the derived agronomy advice.
func (s *AreaService) Summary(ctx context.Context, principal model.Principal, id string) (*AreaSummary, error) {
	area, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	bounds, err := spatial.Bounds(area.Polygon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	summary := &AreaSummary{
		Area:     area,
		Bounds:   bounds,
		Centroid: spatial.Centroid(area.Polygon),
	}

	if avg := area.Averages(); avg != nil {
		rec := agronomy.Recommend(*avg)
		summary.Averages = avg
		summary.Recommendation = &rec
	}

	return summary, nil
}
