package mocks

import (
	"context"
)

// MockTxManager runs the callback inline and counts the transactions it was asked to open.
type MockTxManager struct {
	Calls int
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
