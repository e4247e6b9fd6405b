package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-service/internal/model"
)

type recorderEnv struct {
	areas        *fakeAreaStore
	measurements *fakeMeasurementStore
	aggregation  *AggregationService
	recorder     *MeasurementService
	resolver     *fakeLocationResolver
	deviceID     uuid.UUID
	areaID       string
}

func newRecorderEnv(t *testing.T) *recorderEnv {
	t.Helper()

	areas := newFakeAreaStore()
	measurements := newFakeMeasurementStore()
	resolver := &fakeLocationResolver{label: "Test Valley"}
	aggregation := NewAggregationService(areas, measurements)
	recorder := NewMeasurementService(measurements, areas, aggregation, resolver)

	deviceID := uuid.New()
	area := model.Area{
		ID:            "alice_" + deviceID.String() + "_1700000000000",
		Name:          "north field",
		OwnerUsername: "alice",
		DeviceID:      deviceID,
		Polygon:       model.PointList(squarePolygon()),
	}
	areas.areas[area.ID] = area

	return &recorderEnv{
		areas:        areas,
		measurements: measurements,
		aggregation:  aggregation,
		recorder:     recorder,
		resolver:     resolver,
		deviceID:     deviceID,
		areaID:       area.ID,
	}
}

func (e *recorderEnv) input(lat, lng float64, readings model.Channels) RecordMeasurementInput {
	return RecordMeasurementInput{
		AreaID:    e.areaID,
		DeviceID:  e.deviceID.String(),
		Latitude:  lat,
		Longitude: lng,
		Readings:  readings,
	}
}

func TestRecord_SequentialSequenceNumbers(t *testing.T) {
	env := newRecorderEnv(t)

	for want := 1; want <= 3; want++ {
		m, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{}))
		require.NoError(t, err)
		assert.Equal(t, want, m.SequenceInArea)
	}

	area, err := env.areas.GetByID(context.Background(), env.areaID)
	require.NoError(t, err)
	assert.Equal(t, 3, area.SampleCount)
}

func TestRecord_PositionOutside(t *testing.T) {
	env := newRecorderEnv(t)

	_, err := env.recorder.Record(context.Background(), alice(), env.input(15, 15, model.Channels{}))
	assert.ErrorIs(t, err, ErrPositionOutside)

	stored, listErr := env.measurements.ListByArea(context.Background(), env.areaID)
	require.NoError(t, listErr)
	assert.Empty(t, stored)

	area, getErr := env.areas.GetByID(context.Background(), env.areaID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, area.SampleCount)
}

func TestRecord_DeviceMismatch(t *testing.T) {
	env := newRecorderEnv(t)

	input := env.input(5, 5, model.Channels{})
	input.DeviceID = uuid.NewString()

	_, err := env.recorder.Record(context.Background(), alice(), input)
	assert.ErrorIs(t, err, ErrDeviceMismatch)
}

func TestRecord_DraftAreaRejected(t *testing.T) {
	env := newRecorderEnv(t)

	draft := model.Area{
		ID:            "alice_draft",
		Name:          "draft",
		OwnerUsername: "alice",
		DeviceID:      env.deviceID,
		Polygon:       model.PointList(squarePolygon()[:2]),
	}
	env.areas.areas[draft.ID] = draft

	input := env.input(5, 5, model.Channels{})
	input.AreaID = draft.ID

	_, err := env.recorder.Record(context.Background(), alice(), input)
	assert.ErrorIs(t, err, ErrAreaNotConfirmed)
}

func TestRecord_UnknownAreaAndForeignOwner(t *testing.T) {
	env := newRecorderEnv(t)

	input := env.input(5, 5, model.Channels{})
	input.AreaID = "nope"
	_, err := env.recorder.Record(context.Background(), alice(), input)
	assert.ErrorIs(t, err, ErrNotFound)

	mallory := model.Principal{Username: "mallory", Role: model.RoleUser}
	_, err = env.recorder.Record(context.Background(), mallory, env.input(5, 5, model.Channels{}))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRecord_ResolvesLocationLabel(t *testing.T) {
	env := newRecorderEnv(t)

	m, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{}))
	require.NoError(t, err)
	assert.Equal(t, "Test Valley", m.LocationLabel)
	assert.Equal(t, 1, env.resolver.calls)

	// A user-supplied label wins over the resolver.
	input := env.input(5, 5, model.Channels{})
	input.LocationLabel = "my plot"
	m, err = env.recorder.Record(context.Background(), alice(), input)
	require.NoError(t, err)
	assert.Equal(t, "my plot", m.LocationLabel)
	assert.Equal(t, 1, env.resolver.calls)
}

func TestRecord_ResolverFailureDoesNotBlock(t *testing.T) {
	env := newRecorderEnv(t)
	env.resolver.err = errors.New("geocoder down")

	m, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{}))
	require.NoError(t, err)
	assert.Empty(t, m.LocationLabel)
}

func TestRecord_AggregationFailureKeepsMeasurement(t *testing.T) {
	env := newRecorderEnv(t)
	env.areas.updateErr = errors.New("store unavailable")

	m, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{}))
	assert.ErrorIs(t, err, ErrAggregation)
	require.NotNil(t, m)

	stored, listErr := env.measurements.ListByArea(context.Background(), env.areaID)
	require.NoError(t, listErr)
	assert.Len(t, stored, 1)

	// Once the store recovers, an idempotent recompute heals the aggregates.
	env.areas.updateErr = nil
	area, err := env.aggregation.Recompute(context.Background(), alice(), env.areaID)
	require.NoError(t, err)
	assert.Equal(t, 1, area.SampleCount)
}

func TestRecompute_TemperatureAverageRounding(t *testing.T) {
	env := newRecorderEnv(t)

	for _, temp := range []float64{25.5, 26.1, 25.8, 26.3, 25.9} {
		_, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{Temperature: temp}))
		require.NoError(t, err)
	}

	area, err := env.areas.GetByID(context.Background(), env.areaID)
	require.NoError(t, err)
	require.NotNil(t, area.Averages())
	assert.Equal(t, 25.92, area.Averages().Temperature)
	assert.Equal(t, 5, area.SampleCount)
}

func TestRecompute_Idempotent(t *testing.T) {
	env := newRecorderEnv(t)

	_, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{
		Temperature: 21.5, Moisture: 33, Nitrogen: 18, Phosphorus: 12, Potassium: 90, PH: 6.1,
	}))
	require.NoError(t, err)

	first, err := env.aggregation.Recompute(context.Background(), alice(), env.areaID)
	require.NoError(t, err)
	second, err := env.aggregation.Recompute(context.Background(), alice(), env.areaID)
	require.NoError(t, err)

	assert.Equal(t, first.SampleCount, second.SampleCount)
	assert.Equal(t, first.Averages(), second.Averages())
}

func TestRecompute_EmptyAreaClearsAverages(t *testing.T) {
	env := newRecorderEnv(t)

	area, err := env.aggregation.Recompute(context.Background(), alice(), env.areaID)
	require.NoError(t, err)
	assert.Equal(t, 0, area.SampleCount)
	assert.Nil(t, area.Averages())
}

func TestListByArea_OrderedBySequence(t *testing.T) {
	env := newRecorderEnv(t)

	for i := 0; i < 3; i++ {
		_, err := env.recorder.Record(context.Background(), alice(), env.input(5, 5, model.Channels{}))
		require.NoError(t, err)
	}

	list, err := env.recorder.ListByArea(context.Background(), alice(), env.areaID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, m := range list {
		assert.Equal(t, i+1, m.SequenceInArea)
	}
}
