package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/catalog/repository"
	"github.com/ovenside/bakery-admin/internal/platform/cache"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

var ErrInvalidCategory = errors.New("unknown product category")

const productListCacheKey = "products:list"

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ReconcileStatuses(ctx context.Context) (int, error)
}

type catalogServiceImpl struct {
	repo  repository.ProductRepository
	cache *cache.Cache
}

func NewCatalogService(repo repository.ProductRepository, c *cache.Cache) CatalogService {
	return &catalogServiceImpl{repo: repo, cache: c}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	hit, err := s.cache.Get(ctx, productListCacheKey, &cached)
	if err != nil {
		// A broken cache must not take the catalog down.
		logger.Error("ListProducts: cache read failed", err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, productListCacheKey, products); err != nil {
		logger.Error("ListProducts: cache write failed", err)
	}
	return products, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if !domain.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Status:      req.Status,
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if p.Status == "" {
		p.Status = domain.StatusInStock
	}
	if p.Quantity == 0 {
		p.Status = domain.StatusOutOfStock
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("could not save product: %w", err)
	}
	s.invalidateList(ctx)
	return p, nil
}

// UpdateProduct merges the provided fields over the stored record and writes
// the full row back. Quantity changes drive the stock status: hitting zero
// always marks the product out of stock, restocking a sold-out product marks
// it back in stock, and an explicit status in the payload only sticks when
// neither rule fires.
func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id int64, req domain.UpdateProductRequest) (*domain.Product, error) {
	current, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil && !domain.ValidCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		current.Category = *req.Category
	}

	statusForced := false
	if req.Quantity != nil {
		wasSoldOut := current.Status == domain.StatusOutOfStock
		current.Quantity = *req.Quantity
		if current.Quantity == 0 {
			current.Status = domain.StatusOutOfStock
			statusForced = true
		} else if wasSoldOut {
			current.Status = domain.StatusInStock
			statusForced = true
		}
	}
	if req.Status != nil && !statusForced {
		current.Status = *req.Status
	}

	if err := s.repo.UpdateProduct(ctx, current); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return current, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

// ReconcileStatuses repairs rows whose status drifted from their quantity
// (e.g. direct database edits). Returns the number of rows fixed.
func (s *catalogServiceImpl) ReconcileStatuses(ctx context.Context) (int, error) {
	drifted, err := s.repo.ListStatusDrift(ctx)
	if err != nil {
		return 0, err
	}
	fixed := 0
	for i := range drifted {
		p := &drifted[i]
		if p.Quantity == 0 {
			p.Status = domain.StatusOutOfStock
		} else {
			p.Status = domain.StatusInStock
		}
		if err := s.repo.UpdateProduct(ctx, p); err != nil {
			logger.Error(fmt.Sprintf("ReconcileStatuses: failed to repair product %d", p.ID), err)
			continue
		}
		fixed++
	}
	if fixed > 0 {
		s.invalidateList(ctx)
	}
	return fixed, nil
}

func (s *catalogServiceImpl) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, productListCacheKey); err != nil {
		logger.Error("invalidateList: cache delete failed", err)
	}
}
