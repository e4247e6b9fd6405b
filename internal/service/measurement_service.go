package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"field-service/internal/model"
	"field-service/internal/spatial"
)

type MeasurementService struct {
	measurementStore MeasurementStore
	areaStore        AreaStore
	aggregation      *AggregationService
	locationResolver LocationResolver
}

func NewMeasurementService(
	measurementStore MeasurementStore,
	areaStore AreaStore,
	aggregation *AggregationService,
	locationResolver LocationResolver,
) *MeasurementService {
	return &MeasurementService{
		measurementStore: measurementStore,
		areaStore:        areaStore,
		aggregation:      aggregation,
		locationResolver: locationResolver,
	}
}

type RecordMeasurementInput struct {
	AreaID        string
	DeviceID      string
	Latitude      float64
	Longitude     float64
	Readings      model.Channels
	LocationLabel string
	CapturedAt    string
}

// Record validates and persists one capture, then synchronously recomputes
// the area's aggregates. When the recompute fails the measurement is already
// durable: the created record is returned alongside an ErrAggregation so the
// caller can report the stale aggregates without discarding the sample.
func (s *MeasurementService) Record(ctx context.Context, principal model.Principal, input RecordMeasurementInput) (*model.Measurement, error) {
	area, err := s.areaStore.GetByID(ctx, input.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, ErrNotFound
	}
	if !principal.CanAccess(area.OwnerUsername) {
		return nil, ErrPermissionDenied
	}
	if !area.Confirmed() {
		return nil, ErrAreaNotConfirmed
	}

	deviceID, err := uuid.Parse(input.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid device id", ErrInvalidInput)
	}
	if deviceID != area.DeviceID {
		return nil, ErrDeviceMismatch
	}

	position := spatial.Point{Lat: input.Latitude, Lng: input.Longitude}
	if !spatial.PointInPolygon(position, area.Polygon) {
		return nil, ErrPositionOutside
	}

	capturedAt := time.Now()
	if input.CapturedAt != "" {
		capturedAt, err = time.Parse(time.RFC3339, input.CapturedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid captured_at", ErrInvalidInput)
		}
	}

	label := input.LocationLabel
	if label == "" && s.locationResolver != nil {
		// Best effort: an unreachable geocoder never blocks the capture.
		if resolved, resolveErr := s.locationResolver.Resolve(ctx, input.Latitude, input.Longitude); resolveErr == nil {
			label = resolved
		}
	}

	maxSeq, err := s.measurementStore.MaxSequenceForArea(ctx, area.ID)
	if err != nil {
		return nil, err
	}

	measurement := &model.Measurement{
		AreaID:         area.ID,
		DeviceID:       deviceID,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		SequenceInArea: maxSeq + 1,
		Readings:       input.Readings,
		LocationLabel:  label,
		CapturedAt:     capturedAt,
	}

	if err := s.measurementStore.Insert(ctx, measurement); err != nil {
		return nil, err
	}

	if _, err := s.aggregation.recomputeArea(ctx, area); err != nil {
		return measurement, err
	}

	return measurement, nil
}

// ListByArea returns the area's capture history ordered by sequence.
func (s *MeasurementService) ListByArea(ctx context.Context, principal model.Principal, areaID string) ([]model.Measurement, error) {
	area, err := s.areaStore.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, ErrNotFound
	}
	if !principal.CanAccess(area.OwnerUsername) {
		return nil, ErrPermissionDenied
	}

	return s.measurementStore.ListByArea(ctx, areaID)
}
