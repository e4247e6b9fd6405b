package service

import (
	"context"

	"github.com/google/uuid"

	"field-service/internal/model"
)

type fakeAreaStore struct {
	areas     map[string]model.Area
	createErr error
	getErr    error
	updateErr error
	listErr   error
}

func newFakeAreaStore() *fakeAreaStore {
	return &fakeAreaStore{areas: make(map[string]model.Area)}
}

func (f *fakeAreaStore) Create(_ context.Context, area *model.Area) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.areas[area.ID] = *area
	return nil
}

func (f *fakeAreaStore) GetByID(_ context.Context, id string) (*model.Area, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	area, ok := f.areas[id]
	if !ok {
		return nil, nil
	}
	cp := area
	return &cp, nil
}

func (f *fakeAreaStore) Update(_ context.Context, area *model.Area) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.areas[area.ID] = *area
	return nil
}

func (f *fakeAreaStore) List(_ context.Context, filter AreaListFilter) ([]model.Area, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var areas []model.Area
	for _, area := range f.areas {
		if filter.OwnerUsername != nil && area.OwnerUsername != *filter.OwnerUsername {
			continue
		}
		if filter.DeviceID != nil && area.DeviceID.String() != *filter.DeviceID {
			continue
		}
		areas = append(areas, area)
	}
	return areas, nil
}

type fakeMeasurementStore struct {
	byArea    map[string][]model.Measurement
	insertErr error
	listErr   error
	maxErr    error
}

func newFakeMeasurementStore() *fakeMeasurementStore {
	return &fakeMeasurementStore{byArea: make(map[string][]model.Measurement)}
}

func (f *fakeMeasurementStore) Insert(_ context.Context, m *model.Measurement) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.byArea[m.AreaID] = append(f.byArea[m.AreaID], *m)
	return nil
}

func (f *fakeMeasurementStore) ListByArea(_ context.Context, areaID string) ([]model.Measurement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Measurement(nil), f.byArea[areaID]...), nil
}

func (f *fakeMeasurementStore) MaxSequenceForArea(_ context.Context, areaID string) (int, error) {
	if f.maxErr != nil {
		return 0, f.maxErr
	}
	max := 0
	for _, m := range f.byArea[areaID] {
		if m.SequenceInArea > max {
			max = m.SequenceInArea
		}
	}
	return max, nil
}

type fakeDeviceStore struct {
	devices   map[uuid.UUID]model.Device
	createErr error
	getErr    error
}

func newFakeDeviceStore() *fakeDeviceStore {
	return &fakeDeviceStore{devices: make(map[uuid.UUID]model.Device)}
}

func (f *fakeDeviceStore) Create(_ context.Context, device *model.Device) error {
	if f.createErr != nil {
		return f.createErr
	}
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	f.devices[device.ID] = *device
	return nil
}

func (f *fakeDeviceStore) GetByID(_ context.Context, id uuid.UUID) (*model.Device, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	device, ok := f.devices[id]
	if !ok {
		return nil, nil
	}
	cp := device
	return &cp, nil
}

func (f *fakeDeviceStore) ListByOwner(_ context.Context, ownerUsername string) ([]model.Device, error) {
	var devices []model.Device
	for _, d := range f.devices {
		if d.OwnerUsername == ownerUsername {
			devices = append(devices, d)
		}
	}
	return devices, nil
}

type fakeLocationResolver struct {
	label string
	err   error
	calls int
}

func (f *fakeLocationResolver) Resolve(_ context.Context, lat, lng float64) (string, error) {
	f.calls++
	return f.label, f.err
}
