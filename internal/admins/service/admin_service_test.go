package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovenside/bakery-admin/internal/admins/domain"
	"github.com/ovenside/bakery-admin/internal/admins/repository"
	"github.com/ovenside/bakery-admin/internal/admins/repository/mocks"
)

func TestAdminService_Register(t *testing.T) {
	ctx := context.TODO()
	registerReq := domain.RegisterRequest{
		Name:     "Head Baker",
		Email:    "Baker@Example.com",
		Password: "password123",
	}

	t.Run("Successful registration normalizes email", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		mockRepo.On("CreateAdmin", ctx, mock.MatchedBy(func(a *domain.Admin) bool {
			return a.Email == "baker@example.com" && a.PasswordHash != "" && a.PasswordHash != "password123"
		})).Return(nil).Once()

		admin, err := svc.Register(ctx, registerReq)

		assert.NoError(t, err)
		assert.NotNil(t, admin)
		assert.Empty(t, admin.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		mockRepo.On("CreateAdmin", ctx, mock.AnythingOfType("*domain.Admin")).
			Return(repository.ErrAdminConflict).Once()

		admin, err := svc.Register(ctx, registerReq)

		assert.Nil(t, admin)
		assert.ErrorIs(t, err, ErrAdminAlreadyExists)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error wrapped", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		mockRepo.On("CreateAdmin", ctx, mock.AnythingOfType("*domain.Admin")).
			Return(errors.New("database error")).Once()

		admin, err := svc.Register(ctx, registerReq)

		assert.Nil(t, admin)
		assert.Contains(t, err.Error(), "could not save admin")
		mockRepo.AssertExpectations(t)
	})
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.TODO()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &domain.Admin{
		ID:           1,
		Name:         "Head Baker",
		Email:        "baker@example.com",
		PasswordHash: string(hashedPassword),
	}

	t.Run("Successful login", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		mockRepo.On("GetAdminByEmail", ctx, "baker@example.com").Return(stored, nil).Once()

		admin, err := svc.Login(ctx, domain.LoginRequest{Email: "baker@example.com", Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, "baker@example.com", admin.Email)
		assert.Empty(t, admin.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		mockRepo.On("GetAdminByEmail", ctx, "ghost@example.com").
			Return(nil, repository.ErrAdminNotFound).Once()

		admin, err := svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "whatever123"})

		assert.Nil(t, admin)
		assert.ErrorIs(t, err, ErrAdminNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(mocks.MockAdminRepository)
		svc := NewAdminService(mockRepo)

		fresh := *stored
		fresh.PasswordHash = string(hashedPassword)
		mockRepo.On("GetAdminByEmail", ctx, "baker@example.com").Return(&fresh, nil).Once()

		admin, err := svc.Login(ctx, domain.LoginRequest{Email: "baker@example.com", Password: "wrong-pass"})

		assert.Nil(t, admin)
		assert.ErrorIs(t, err, ErrInvalidPassword)
		mockRepo.AssertExpectations(t)
	})
}
