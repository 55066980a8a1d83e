// Package client wraps the storefront REST API consumed by the admin
// console. Every operation is a single request/response cycle: no retries,
// no queueing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	catalogDomain "github.com/ovenside/bakery-admin/internal/catalog/domain"
	ordersDomain "github.com/ovenside/bakery-admin/internal/orders/domain"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

// ProductDraft is a product record without a server-assigned id, used for
// create requests and for full-replace updates. ImageURL may stay empty (the
// view substitutes a placeholder) and an empty Status defaults to in_stock
// when normalized.
type ProductDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
}

// Normalize applies the documented defaults once, at the boundary.
func (d *ProductDraft) Normalize() {
	if d.Status == "" {
		d.Status = catalogDomain.StatusInStock
	}
}

type StorefrontClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewStorefrontClient(baseURL string) *StorefrontClient {
	return &StorefrontClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *StorefrontClient) ListProducts(ctx context.Context) ([]catalogDomain.Product, error) {
	const op = "ListProducts"

	resp, err := c.do(ctx, op, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// An empty catalog decodes to an empty slice; that is not a failure.
	var products []catalogDomain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		logger.Error("StorefrontClient.ListProducts: JSON decode failed", err)
		return nil, &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return products, nil
}

func (c *StorefrontClient) CreateProduct(ctx context.Context, draft ProductDraft) (*catalogDomain.Product, error) {
	const op = "CreateProduct"
	draft.Normalize()

	resp, err := c.do(ctx, op, http.MethodPost, "/products", draft)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created struct {
		ProductID int64                  `json:"product_id"`
		Product   *catalogDomain.Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		logger.Error("StorefrontClient.CreateProduct: JSON decode failed", err)
		return nil, &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	// Prefer the record the storefront echoes back: it carries the status
	// the backend settled on, which can differ from the one sent (a zero
	// quantity comes back out_of_stock).
	if created.Product != nil {
		return created.Product, nil
	}
	return &catalogDomain.Product{
		ID:          created.ProductID,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		ImageURL:    draft.ImageURL,
		Category:    draft.Category,
		Quantity:    draft.Quantity,
		Status:      draft.Status,
	}, nil
}

// UpdateProduct replaces the stored record with draft and returns the
// record as the storefront now holds it. Callers must supply the complete
// desired record, not a delta; the returned record may differ from it where
// the storefront couples status to quantity.
func (c *StorefrontClient) UpdateProduct(ctx context.Context, id int64, draft ProductDraft) (*catalogDomain.Product, error) {
	const op = "UpdateProduct"
	draft.Normalize()

	resp, err := c.do(ctx, op, http.MethodPut, fmt.Sprintf("/products/%d", id), draft)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var updated struct {
		Product *catalogDomain.Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		logger.Error("StorefrontClient.UpdateProduct: JSON decode failed", err)
		return nil, &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if updated.Product != nil {
		return updated.Product, nil
	}
	return &catalogDomain.Product{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		ImageURL:    draft.ImageURL,
		Category:    draft.Category,
		Quantity:    draft.Quantity,
		Status:      draft.Status,
	}, nil
}

func (c *StorefrontClient) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, "DeleteProduct", http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *StorefrontClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, "Login", http.MethodPost, "/login-admin", body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *StorefrontClient) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	resp, err := c.do(ctx, "Register", http.MethodPost, "/register-admin", body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *StorefrontClient) ListOrders(ctx context.Context) ([]ordersDomain.OrderSummary, error) {
	const op = "ListOrders"

	resp, err := c.do(ctx, op, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var orders []ordersDomain.OrderSummary
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		logger.Error("StorefrontClient.ListOrders: JSON decode failed", err)
		return nil, &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return orders, nil
}

// do issues one request and maps failures onto the client error taxonomy.
// Callers own resp.Body on success.
func (c *StorefrontClient) do(ctx context.Context, op, method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &RequestError{Op: op, Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		logger.Error("StorefrontClient."+op+": NewRequest failed", err)
		return nil, &RequestError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error("StorefrontClient."+op+": HTTPClient.Do failed", err)
		return nil, &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		logger.Error(fmt.Sprintf("StorefrontClient.%s: storefront returned status %d", op, resp.StatusCode), nil)
		return nil, &StatusError{Op: op, Status: resp.StatusCode, Message: errBody.Error}
	}
	return resp, nil
}
