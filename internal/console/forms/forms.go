// Package forms implements the create/update modal workflow. At most one
// modal is open at a time; while one is open the affordances that would
// launch another render disabled.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	catalogDomain "github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/console/client"
	"github.com/ovenside/bakery-admin/internal/console/state"
	"github.com/ovenside/bakery-admin/internal/console/validation"
	"github.com/ovenside/bakery-admin/internal/console/view"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
)

var (
	ErrModalOpen = errors.New("another modal is already open")
	ErrNoModal   = errors.New("no modal is open")
)

// ProductWriter is the slice of the storefront client the modal needs.
// Both calls return the record as the storefront holds it afterwards.
type ProductWriter interface {
	CreateProduct(ctx context.Context, draft client.ProductDraft) (*catalogDomain.Product, error)
	UpdateProduct(ctx context.Context, id int64, draft client.ProductDraft) (*catalogDomain.Product, error)
}

// Values carries the raw form field text. Parsing happens on submit, never
// in the template.
type Values struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
	Category    string
	Quantity    string
	Status      string
}

// Modal is the open overlay: its kind, the row it edits (update only), the
// current field values, and the error from the last failed submit.
type Modal struct {
	Kind      Kind
	ProductID int64
	Values    Values
	Err       string
}

type Controller struct {
	store  *state.TableStore
	client ProductWriter

	mu     sync.Mutex
	active *Modal
}

func NewController(store *state.TableStore, c ProductWriter) *Controller {
	return &Controller{store: store, client: c}
}

// OpenCreate opens the new-product modal with defaults.
func (c *Controller) OpenCreate() (*Modal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, ErrModalOpen
	}
	c.active = &Modal{
		Kind: KindCreate,
		Values: Values{
			Quantity: "0",
			Status:   catalogDomain.StatusInStock,
		},
	}
	m := *c.active
	return &m, nil
}

// OpenUpdate opens the update modal prefilled from the store.
func (c *Controller) OpenUpdate(id int64) (*Modal, error) {
	p, ok := c.store.Get(id)
	if !ok {
		return nil, state.ErrRowNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, ErrModalOpen
	}
	c.active = &Modal{
		Kind:      KindUpdate,
		ProductID: id,
		Values: Values{
			Name:        p.Name,
			Description: p.Description,
			Price:       view.StripPrice(view.FormatPrice(p.Price)),
			ImageURL:    p.ImageURL,
			Category:    p.Category,
			Quantity:    strconv.Itoa(p.Quantity),
			Status:      p.Status,
		},
	}
	m := *c.active
	return &m, nil
}

// Submit validates the entered values and commits the open modal. On
// success the modal closes and the table gains or patches exactly one row.
// On any failure the modal stays open, keeping the entered values and the
// error message; the table is untouched.
func (c *Controller) Submit(ctx context.Context, values Values) (*catalogDomain.Product, error) {
	// All modal mutations happen under the lock; concurrently rendering
	// requests read through Active, which hands out copies.
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return nil, ErrNoModal
	}
	c.active.Values = values
	kind := c.active.Kind
	productID := c.active.ProductID
	c.mu.Unlock()

	draft, err := c.buildDraft(values)
	if err != nil {
		c.setErr(err.Error())
		return nil, err
	}

	switch kind {
	case KindCreate:
		created, err := c.client.CreateProduct(ctx, *draft)
		if err != nil {
			logger.Error("Submit: create failed", err)
			c.setErr("Failed to add product. Please try again.")
			return nil, err
		}
		if err := c.store.Insert(*created); err != nil {
			c.setErr(err.Error())
			return nil, err
		}
		c.close()
		return created, nil

	case KindUpdate:
		// The store takes the record the storefront reports back, so a
		// backend-side status flip (zero quantity, restock) lands here too.
		updated, err := c.client.UpdateProduct(ctx, productID, *draft)
		if err != nil {
			logger.Error(fmt.Sprintf("Submit: update failed for product %d", productID), err)
			c.setErr("Failed to update product. Please try again.")
			return nil, err
		}
		if err := c.store.Apply(*updated); err != nil {
			c.setErr(err.Error())
			return nil, err
		}
		c.close()
		return updated, nil
	}

	return nil, ErrNoModal
}

// Cancel dismisses the modal unconditionally; entered values are discarded
// and no storefront call is made.
func (c *Controller) Cancel() {
	c.close()
}

// Active returns a copy of the open modal for rendering. Renderers never
// see partially written state from a concurrent Submit.
func (c *Controller) Active() (*Modal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil, false
	}
	m := *c.active
	return &m, true
}

func (c *Controller) IsOpen() bool {
	_, open := c.Active()
	return open
}

func (c *Controller) buildDraft(values Values) (*client.ProductDraft, error) {
	name, err := validation.Required("name", values.Name)
	if err != nil {
		return nil, err
	}
	category, err := validation.Required("category", values.Category)
	if err != nil {
		return nil, err
	}
	price, err := validation.ParseFormPrice(values.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := validation.ParseQuantity(values.Quantity)
	if err != nil {
		return nil, err
	}

	draft := &client.ProductDraft{
		Name:        name,
		Description: values.Description,
		Price:       price,
		ImageURL:    values.ImageURL,
		Category:    category,
		Quantity:    quantity,
		Status:      values.Status,
	}
	draft.Normalize()
	return draft, nil
}

func (c *Controller) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
}

func (c *Controller) setErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.Err = msg
	}
}
