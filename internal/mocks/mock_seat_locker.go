package mocks

import (
	"context"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatLocker struct {
	mock.Mock
	domain.SeatLocker
}

func (m *MockSeatLocker) Lock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error {
	args := m.Called(ctx, scheduleID, seatIDs, owner)
	return args.Error(0)
}

func (m *MockSeatLocker) Unlock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error {
	args := m.Called(ctx, scheduleID, seatIDs, owner)
	return args.Error(0)
}
