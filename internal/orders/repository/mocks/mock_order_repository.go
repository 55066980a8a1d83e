package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ovenside/bakery-admin/internal/orders/domain"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]domain.OrderSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
