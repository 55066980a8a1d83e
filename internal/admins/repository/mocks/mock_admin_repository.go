package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ovenside/bakery-admin/internal/admins/domain"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}
