package mocks

import (
	"context"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatMapRepo struct {
	mock.Mock
	domain.SeatMapRepository
}

func (m *MockSeatMapRepo) GetLayout(ctx context.Context, locationID string) (*domain.VenueLayout, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VenueLayout), args.Error(1)
}

func (m *MockSeatMapRepo) GetZonePricing(ctx context.Context, eventID, scheduleID string) ([]domain.ZonePricing, error) {
	args := m.Called(ctx, eventID, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ZonePricing), args.Error(1)
}

func (m *MockSeatMapRepo) GetSeatPlacements(ctx context.Context, seatIDs []string) (map[string]domain.SeatPlacement, error) {
	args := m.Called(ctx, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SeatPlacement), args.Error(1)
}

func (m *MockSeatMapRepo) GetReservedSeatIDs(ctx context.Context, scheduleID string, seatIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, scheduleID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}
