package state

import (
	"context"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

// ProductLister is the slice of the storefront client the synchronizer
// needs.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Synchronizer drives the initial full-list fetch. Mutations after that
// patch the store row by row; the full list is never refetched.
type Synchronizer struct {
	client ProductLister
	store  *TableStore
}

func NewSynchronizer(client ProductLister, store *TableStore) *Synchronizer {
	return &Synchronizer{client: client, store: store}
}

// Load fetches the catalog and resolves the loading placeholder into rows,
// the empty placeholder, or the failure placeholder.
func (s *Synchronizer) Load(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		logger.Error("Synchronizer.Load: list failed", err)
		s.store.Fail()
		return err
	}
	if err := s.store.ReplaceAll(products); err != nil {
		logger.Error("Synchronizer.Load: inconsistent product list", err)
		s.store.Fail()
		return err
	}
	return nil
}
