package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/catalog/repository"
	"github.com/ovenside/bakery-admin/internal/catalog/service/mocks"
)

func newTestRouter(svc *mocks.MockCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProductHandler(svc).RegisterRoutes(router)
	return router
}

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("Returns products", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("ListProducts", mock.Anything).Return([]domain.Product{
			{ID: 1, Name: "Baguette", Price: 2.50, Category: "Artisan Breads"},
		}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []domain.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "Baguette", got[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("Empty list is a valid 200", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("ListProducts", mock.Anything).Return([]domain.Product{}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("Created with server-assigned id", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("CreateProduct", mock.Anything, mock.AnythingOfType("domain.CreateProductRequest")).
			Return(&domain.Product{ID: 17, Name: "Scone", Status: domain.StatusInStock}, nil).Once()

		body := `{"name":"Scone","price":2.00,"category":"Pastries","quantity":5}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"product_id":17`)

		var resp struct {
			Product domain.Product `json:"product"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(17), resp.Product.ID)
		svc.AssertExpectations(t)
	})

	t.Run("Missing required fields rejected", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)

		body := `{"description":"no name"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Negative price rejected by binding", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)

		body := `{"name":"Scone","price":-5,"category":"Pastries"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	t.Run("Success echoes the stored record", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		// The service settles the status itself (zero quantity forces
		// out_of_stock); clients read the result from the response.
		svc.On("UpdateProduct", mock.Anything, int64(5), mock.AnythingOfType("domain.UpdateProductRequest")).
			Return(&domain.Product{ID: 5, Name: "Scone", Quantity: 0, Status: domain.StatusOutOfStock}, nil).Once()

		body := `{"quantity":0}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/5", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product updated successfully")

		var resp struct {
			Product domain.Product `json:"product"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.StatusOutOfStock, resp.Product.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown id maps to 404", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("UpdateProduct", mock.Anything, int64(99), mock.AnythingOfType("domain.UpdateProductRequest")).
			Return(nil, repository.ErrProductNotFound).Once()

		body := `{"price":4.25}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/99", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Non-numeric id", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/abc", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("DeleteProduct", mock.Anything, int64(5)).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/5", nil)
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product deleted successfully")
		svc.AssertExpectations(t)
	})

	t.Run("Unknown id maps to 404", func(t *testing.T) {
		svc := new(mocks.MockCatalogService)
		svc.On("DeleteProduct", mock.Anything, int64(5)).Return(repository.ErrProductNotFound).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/5", nil)
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
