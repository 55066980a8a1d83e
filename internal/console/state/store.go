// Package state owns the console's in-memory product table. The rendered
// view is a pure projection of this store; displayed text is never parsed
// back to rebuild update payloads.
package state

import (
	"errors"
	"sync"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseEmpty
	PhaseFailed
)

var (
	ErrDuplicateRow = errors.New("a row with this product id already exists")
	ErrRowNotFound  = errors.New("no row with this product id")
)

// TableStore maps product ids to their last-known backend state, keeping
// rows in server-returned order. Exactly one row per id.
type TableStore struct {
	mu    sync.RWMutex
	phase Phase
	byID  map[int64]domain.Product
	order []int64
}

func NewTableStore() *TableStore {
	return &TableStore{
		phase: PhaseLoading,
		byID:  make(map[int64]domain.Product),
	}
}

// ReplaceAll swaps in a freshly fetched product list. Duplicate ids in the
// response are rejected wholesale; the previous contents stay untouched.
func (s *TableStore) ReplaceAll(products []domain.Product) error {
	byID := make(map[int64]domain.Product, len(products))
	order := make([]int64, 0, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return ErrDuplicateRow
		}
		byID[p.ID] = p
		order = append(order, p.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = byID
	s.order = order
	if len(order) == 0 {
		s.phase = PhaseEmpty
	} else {
		s.phase = PhaseReady
	}
	return nil
}

// Fail records a failed initial load.
func (s *TableStore) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseFailed
}

// Insert appends exactly one new row, used after a successful create.
func (s *TableStore) Insert(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byID[p.ID]; dup {
		return ErrDuplicateRow
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	s.phase = PhaseReady
	return nil
}

// Apply patches exactly the row matching p.ID; position is preserved.
func (s *TableStore) Apply(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		return ErrRowNotFound
	}
	s.byID[p.ID] = p
	return nil
}

// Remove drops exactly the row with the given id, used only after the
// backend confirmed the delete.
func (s *TableStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrRowNotFound
	}
	delete(s.byID, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.order) == 0 {
		s.phase = PhaseEmpty
	}
	return nil
}

func (s *TableStore) Get(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// Snapshot returns the rows in table order along with the current phase.
func (s *TableStore) Snapshot() ([]domain.Product, Phase) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		rows = append(rows, s.byID[id])
	}
	return rows, s.phase
}

func (s *TableStore) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *TableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
