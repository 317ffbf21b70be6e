package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wholesale-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, f product.Filter) (*product.ListResult, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProductService) GetByItem(ctx context.Context, item string) (*product.Product, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) ShelfLabel(ctx context.Context, item string) ([]byte, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func productTestRouter(svc product.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductHandler(svc)
	r.GET("/api/products", h.List)
	r.GET("/api/products/by-barcode/:barcode", h.GetByBarcode)
	r.GET("/api/products/:item", h.GetByItem)
	r.GET("/api/products/:item/label", h.ShelfLabel)
	return r
}

func TestProductHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("List", mock.Anything, mock.Anything).Return(&product.ListResult{
			Items: []*product.Product{{ID: 1, Item: "SKU001"}},
		}, nil)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?search=cola&pmp=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"SKU001"`)
	})

	t.Run("MalformedFacetIDIs400", func(t *testing.T) {
		svc := new(MockProductService)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?categories=1,abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "List")
	})

	t.Run("MalformedToggleIs400", func(t *testing.T) {
		svc := new(MockProductService)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?promotion=yes", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CountHeader", func(t *testing.T) {
		svc := new(MockProductService)
		total := 57
		svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
			return f.IncludeCount
		})).Return(&product.ListResult{Items: []*product.Product{}, TotalCount: &total}, nil)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?count=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "57", w.Header().Get("X-Total-Count"))
	})

	t.Run("HasMoreHeuristic", func(t *testing.T) {
		svc := new(MockProductService)
		items := make([]*product.Product, product.DefaultLimit)
		for i := range items {
			items[i] = &product.Product{ID: i + 1}
		}
		svc.On("List", mock.Anything, mock.Anything).Return(&product.ListResult{Items: items}, nil)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.Contains(t, w.Body.String(), `"has_more":true`)
	})
}

func TestProductHandler_GetByItem(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("GetByItem", mock.Anything, "NOPE").Return(nil, product.ErrProductNotFound)

		r := productTestRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/NOPE", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_ShelfLabel(t *testing.T) {
	svc := new(MockProductService)
	svc.On("ShelfLabel", mock.Anything, "SKU001").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	r := productTestRouter(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/SKU001/label", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
