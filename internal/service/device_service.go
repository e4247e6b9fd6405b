package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"field-service/internal/model"
)

type DeviceService struct {
	deviceStore DeviceStore
}

func NewDeviceService(deviceStore DeviceStore) *DeviceService {
	return &DeviceService{deviceStore: deviceStore}
}

type RegisterDeviceInput struct {
	Name string
}

func (s *DeviceService) Register(ctx context.Context, principal model.Principal, input RegisterDeviceInput) (*model.Device, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: device name required", ErrInvalidInput)
	}

	device := &model.Device{
		Name:          name,
		OwnerUsername: principal.Username,
	}

	if err := s.deviceStore.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DeviceService) Get(ctx context.Context, principal model.Principal, id string) (*model.Device, error) {
	deviceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid device id", ErrInvalidInput)
	}

	device, err := s.deviceStore.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	if !principal.CanAccess(device.OwnerUsername) {
		return nil, ErrPermissionDenied
	}

	return device, nil
}

func (s *DeviceService) List(ctx context.Context, principal model.Principal) ([]model.Device, error) {
	return s.deviceStore.ListByOwner(ctx, principal.Username)
}
