package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
)

func product(id int64, name string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: 5, Category: "Pastries", Status: domain.StatusInStock}
}

func TestTableStore_StartsLoading(t *testing.T) {
	store := NewTableStore()
	assert.Equal(t, PhaseLoading, store.Phase())
	assert.Equal(t, 0, store.Len())
}

func TestTableStore_ReplaceAll(t *testing.T) {
	store := NewTableStore()

	err := store.ReplaceAll([]domain.Product{product(1, "Baguette"), product(2, "Scone")})
	assert.NoError(t, err)
	assert.Equal(t, PhaseReady, store.Phase())

	products, phase := store.Snapshot()
	assert.Equal(t, PhaseReady, phase)
	assert.Len(t, products, 2)
	assert.Equal(t, "Baguette", products[0].Name, "listing order is preserved")
	assert.Equal(t, "Scone", products[1].Name)
}

func TestTableStore_ReplaceAllEmpty(t *testing.T) {
	store := NewTableStore()

	assert.NoError(t, store.ReplaceAll(nil))
	assert.Equal(t, PhaseEmpty, store.Phase())
}

func TestTableStore_ReplaceAllRejectsDuplicates(t *testing.T) {
	store := NewTableStore()
	assert.NoError(t, store.ReplaceAll([]domain.Product{product(1, "Baguette")}))

	err := store.ReplaceAll([]domain.Product{product(7, "Scone"), product(7, "Scone again")})
	assert.ErrorIs(t, err, ErrDuplicateRow)

	// A rejected replace leaves the previous contents in place.
	products, _ := store.Snapshot()
	assert.Len(t, products, 1)
	assert.Equal(t, "Baguette", products[0].Name)
}

func TestTableStore_InsertAndDuplicate(t *testing.T) {
	store := NewTableStore()
	assert.NoError(t, store.ReplaceAll(nil))

	assert.NoError(t, store.Insert(product(1, "Baguette")))
	assert.Equal(t, PhaseReady, store.Phase())

	err := store.Insert(product(1, "Baguette again"))
	assert.ErrorIs(t, err, ErrDuplicateRow)
	assert.Equal(t, 1, store.Len())
}

func TestTableStore_Apply(t *testing.T) {
	store := NewTableStore()
	assert.NoError(t, store.ReplaceAll([]domain.Product{product(1, "Baguette")}))

	patched := product(1, "Baguette")
	patched.Quantity = 42
	assert.NoError(t, store.Apply(patched))

	p, ok := store.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 42, p.Quantity)

	err := store.Apply(product(9, "Ghost"))
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestTableStore_RemoveLastRowGoesEmpty(t *testing.T) {
	store := NewTableStore()
	assert.NoError(t, store.ReplaceAll([]domain.Product{product(1, "Baguette"), product(2, "Scone")}))

	assert.NoError(t, store.Remove(1))
	assert.Equal(t, PhaseReady, store.Phase())

	assert.NoError(t, store.Remove(2))
	assert.Equal(t, PhaseEmpty, store.Phase())

	assert.ErrorIs(t, store.Remove(2), ErrRowNotFound)
}

func TestTableStore_SnapshotIsACopy(t *testing.T) {
	store := NewTableStore()
	assert.NoError(t, store.ReplaceAll([]domain.Product{product(1, "Baguette")}))

	products, _ := store.Snapshot()
	products[0].Name = "mutated"

	p, _ := store.Get(1)
	assert.Equal(t, "Baguette", p.Name)
}

type stubLister struct {
	products []domain.Product
	err      error
}

func (s *stubLister) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func TestSynchronizer_Load(t *testing.T) {
	store := NewTableStore()
	sync := NewSynchronizer(&stubLister{products: []domain.Product{product(1, "Baguette")}}, store)

	assert.NoError(t, sync.Load(context.Background()))
	assert.Equal(t, PhaseReady, store.Phase())
	assert.Equal(t, 1, store.Len())
}

func TestSynchronizer_LoadFailure(t *testing.T) {
	store := NewTableStore()
	sync := NewSynchronizer(&stubLister{err: errors.New("connection refused")}, store)

	assert.Error(t, sync.Load(context.Background()))
	assert.Equal(t, PhaseFailed, store.Phase())
}

func TestSynchronizer_LoadEmpty(t *testing.T) {
	store := NewTableStore()
	sync := NewSynchronizer(&stubLister{}, store)

	assert.NoError(t, sync.Load(context.Background()))
	assert.Equal(t, PhaseEmpty, store.Phase())
}
