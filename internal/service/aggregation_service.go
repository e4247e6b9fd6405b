package service

import (
	"context"
	"fmt"
	"math"

	"field-service/internal/model"
)

type AggregationService struct {
	areaStore        AreaStore
	measurementStore MeasurementStore
}

func NewAggregationService(areaStore AreaStore, measurementStore MeasurementStore) *AggregationService {
	return &AggregationService{
		areaStore:        areaStore,
		measurementStore: measurementStore,
	}
}

// Recompute rebuilds an area's running averages from the full measurement set
// and persists them. It is idempotent, so it doubles as the recovery path
// when a previous recompute failed after an insert.
func (s *AggregationService) Recompute(ctx context.Context, principal model.Principal, areaID string) (*model.Area, error) {
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

	return s.recomputeArea(ctx, area)
}

// recomputeArea performs the full recompute on an already-loaded area.
// Sample counts in this domain are small, so a complete pass beats keeping
// incremental sums consistent.
func (s *AggregationService) recomputeArea(ctx context.Context, area *model.Area) (*model.Area, error) {
	measurements, err := s.measurementStore.ListByArea(ctx, area.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing measurements: %v", ErrAggregation, err)
	}

	if len(measurements) == 0 {
		area.ClearAverages()
	} else {
		var sums model.Channels
		for _, m := range measurements {
			sums.Temperature += m.Readings.Temperature
			sums.Moisture += m.Readings.Moisture
			sums.Nitrogen += m.Readings.Nitrogen
			sums.Phosphorus += m.Readings.Phosphorus
			sums.Potassium += m.Readings.Potassium
			sums.PH += m.Readings.PH
		}

		n := float64(len(measurements))
		area.SetAverages(model.Channels{
			Temperature: round2(sums.Temperature / n),
			Moisture:    round2(sums.Moisture / n),
			Nitrogen:    round2(sums.Nitrogen / n),
			Phosphorus:  round2(sums.Phosphorus / n),
			Potassium:   round2(sums.Potassium / n),
			PH:          round2(sums.PH / n),
		}, len(measurements))
	}

	if err := s.areaStore.Update(ctx, area); err != nil {
		return nil, fmt.Errorf("%w: updating area aggregates: %v", ErrAggregation, err)
	}

	return area, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
