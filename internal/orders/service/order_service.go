package service

import (
	"context"
	"errors"

	"github.com/ovenside/bakery-admin/internal/orders/domain"
	"github.com/ovenside/bakery-admin/internal/orders/repository"
)

var ErrStatusNotAllowed = errors.New("invalid status, allowed: 'shipped', 'delivered'")

// fulfilmentStatuses are the only values the restricted /update_status
// endpoint may set.
var fulfilmentStatuses = map[string]bool{
	"shipped":   true,
	"delivered": true,
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]domain.OrderSummary, error)
	SetStatus(ctx context.Context, orderID int64, status string) error
	SetFulfilmentStatus(ctx context.Context, orderID int64, status string) error
}

type orderServiceImpl struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderServiceImpl{repo: repo}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	return s.repo.ListOrders(ctx)
}

func (s *orderServiceImpl) SetStatus(ctx context.Context, orderID int64, status string) error {
	return s.repo.UpdateOrderStatus(ctx, orderID, status)
}

func (s *orderServiceImpl) SetFulfilmentStatus(ctx context.Context, orderID int64, status string) error {
	if !fulfilmentStatuses[status] {
		return ErrStatusNotAllowed
	}
	return s.repo.UpdateOrderStatus(ctx, orderID, status)
}
