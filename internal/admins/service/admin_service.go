package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovenside/bakery-admin/internal/admins/domain"
	"github.com/ovenside/bakery-admin/internal/admins/repository"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

var (
	ErrAdminAlreadyExists = errors.New("admin with this email already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidPassword    = errors.New("invalid password")
)

type AdminService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Admin, error)
}

type adminService struct {
	repo repository.AdminRepository
}

func NewAdminService(repo repository.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	admin := &domain.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAdminConflict) {
			return nil, ErrAdminAlreadyExists
		}
		logger.Error("Register: failed to create admin in repo", err)
		return nil, fmt.Errorf("could not save admin: %w", err)
	}

	admin.PasswordHash = ""
	return admin, nil
}

// Login distinguishes an unknown email from a wrong password because the
// console surfaces different messages for the two cases.
func (s *adminService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Admin, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrAdminNotFound
		}
		logger.Error("Login: failed to get admin by email", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	admin.PasswordHash = ""
	return admin, nil
}
