package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/catalog/internal/apperr"
	"github.com/stylehub/catalog/internal/config"
	cataloghttp "github.com/stylehub/catalog/internal/http"
	"github.com/stylehub/catalog/internal/model"
	"github.com/stylehub/catalog/internal/repository"
	"github.com/stylehub/catalog/internal/service"
	"github.com/stylehub/catalog/internal/storage/db"
	"github.com/stylehub/catalog/pkg/validator"
)

// txOnlyDB satisfies db.DB for tests; the in-memory repository never
// reaches SQL, only WithTx matters.
type txOnlyDB struct{}

func (txOnlyDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (txOnlyDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (txOnlyDB) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (txOnlyDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (txOnlyDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (d txOnlyDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(d)
}

type memRepo struct {
	products map[uuid.UUID]model.Product
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[uuid.UUID]model.Product)}
}

func (r *memRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *memRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memRepo) GetProductByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return product, nil
}

func (r *memRepo) ListAllProducts(context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *memRepo) UpdateProduct(_ context.Context, product model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return apperr.ProductNotFoundErr
	}
	r.products[product.ID] = product
	return nil
}

func (r *memRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return apperr.ProductNotFoundErr
	}
	delete(r.products, id)
	return nil
}

func newTestRouter(t *testing.T) (chi.Router, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	productSvc := service.NewProductService(txOnlyDB{}, repo, validator.NewDefaultValidator())

	svc := cataloghttp.New(config.HTTP{}, logger, productSvc)
	r := chi.NewRouter()
	require.NoError(t, svc.RegisterHandlers(r))

	return r, repo
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestListProducts(t *testing.T) {
	t.Run("Should return an empty array for an empty catalog", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	t.Run("Should list created products newest first", func(t *testing.T) {
		r, _ := newTestRouter(t)

		first := doJSON(t, r, http.MethodPost, "/products", `{"name":"Tee","description":"Soft cotton","price":19.99}`)
		require.Equal(t, http.StatusCreated, first.Code)
		second := doJSON(t, r, http.MethodPost, "/products", `{"name":"Hoodie","description":"Warm fleece","price":49.5}`)
		require.Equal(t, http.StatusCreated, second.Code)

		resp := doJSON(t, r, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, resp.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "Hoodie", items[0]["name"])
		assert.Equal(t, "Tee", items[1]["name"])
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should create a product and echo it back", func(t *testing.T) {
		r, repo := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPost, "/products",
			`{"name":"Tee","description":"Soft cotton","price":19.99,"image":"https://img.example.com/tee.jpg"}`)

		require.Equal(t, http.StatusCreated, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "Tee", body["name"])
		assert.Equal(t, 19.99, body["price"])
		assert.NotEmpty(t, body["id"])
		assert.NotEmpty(t, body["createdAt"])
		assert.Len(t, repo.products, 1)
	})

	t.Run("Should accept the price as a numeric string", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPost, "/products",
			`{"name":"Tee","description":"Soft cotton","price":"19.99"}`)

		require.Equal(t, http.StatusCreated, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 19.99, body["price"])
	})

	t.Run("Should reject a missing name with 400 and persist nothing", func(t *testing.T) {
		r, repo := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"description":"Soft cotton","price":19.99}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assertErrorPayload(t, resp)
		assert.Empty(t, repo.products)
	})

	t.Run("Should reject a missing price with 400", func(t *testing.T) {
		r, repo := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"name":"Tee","description":"Soft cotton"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Empty(t, repo.products)
	})

	t.Run("Should reject malformed JSON with 400", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assertErrorPayload(t, resp)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodGet, "/products/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assertErrorPayload(t, resp)
	})

	t.Run("Should return 404 for a malformed id", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodGet, "/products/not-a-uuid", "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	create := func(t *testing.T, r chi.Router) map[string]any {
		t.Helper()
		resp := doJSON(t, r, http.MethodPost, "/products",
			`{"name":"Tee","description":"Soft cotton","price":19.99,"image":"https://img.example.com/tee.jpg"}`)
		require.Equal(t, http.StatusCreated, resp.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		return body
	}

	t.Run("Should apply an image-only update and leave the rest unchanged", func(t *testing.T) {
		r, _ := newTestRouter(t)
		created := create(t, r)

		resp := doJSON(t, r, http.MethodPut, "/products/"+created["id"].(string),
			`{"image":"https://img.example.com/tee-v2.jpg"}`)

		require.Equal(t, http.StatusOK, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "https://img.example.com/tee-v2.jpg", body["image"])
		assert.Equal(t, "Tee", body["name"])
		assert.Equal(t, "Soft cotton", body["description"])
		assert.Equal(t, 19.99, body["price"])
		assert.NotEqual(t, created["updatedAt"], body["updatedAt"])
	})

	t.Run("Should clear the image on an explicit null", func(t *testing.T) {
		r, _ := newTestRouter(t)
		created := create(t, r)

		resp := doJSON(t, r, http.MethodPut, "/products/"+created["id"].(string), `{"image":null}`)

		require.Equal(t, http.StatusOK, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Nil(t, body["image"])
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodPut, "/products/"+uuid.NewString(), `{"name":"Ghost"}`)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assertErrorPayload(t, resp)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Should delete and then report the product as missing", func(t *testing.T) {
		r, _ := newTestRouter(t)

		created := doJSON(t, r, http.MethodPost, "/products",
			`{"name":"Tee","description":"Soft cotton","price":"19.99"}`)
		require.Equal(t, http.StatusCreated, created.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
		assert.Equal(t, 19.99, body["price"])
		id := body["id"].(string)

		deleted := doJSON(t, r, http.MethodDelete, "/products/"+id, "")
		require.Equal(t, http.StatusOK, deleted.Code)
		assert.JSONEq(t, `{"message":"Product deleted successfully"}`, deleted.Body.String())

		missing := doJSON(t, r, http.MethodGet, "/products/"+id, "")
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})

	t.Run("Should return 404 when deleting an unknown id", func(t *testing.T) {
		r, _ := newTestRouter(t)

		resp := doJSON(t, r, http.MethodDelete, "/products/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assertErrorPayload(t, resp)
	})
}

func assertErrorPayload(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	msg, ok := body["error"].(string)
	require.True(t, ok, "error payload must carry an error string")
	assert.NotEmpty(t, msg)
}
