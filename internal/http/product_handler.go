package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stylehub/catalog/internal/apperr"
	"github.com/stylehub/catalog/internal/service"
	"github.com/stylehub/catalog/pkg/ptr"
)

type productHandler struct {
	productSvc service.ProductService
	respond    *responder
}

func newProductHandler(productSvc service.ProductService, respond *responder) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		respond:    respond,
	}
}

// Routes are registered flat so the web UI can hang its static pages
// (for example /products/new) off the same subtree without a mount
// conflict.
func (h *productHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Post("/products", h.CreateProduct)
	r.Get("/products/{id}", h.GetProduct)
	r.Put("/products/{id}", h.UpdateProduct)
	r.Delete("/products/{id}", h.DeleteProduct)
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListAllProducts(r.Context())
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service list all products: %w", err))
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, product := range products {
		items = append(items, newProductResponse(product))
	}

	h.respond.JSON(w, r, http.StatusOK, items)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service get product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	params := service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       float64(req.Price),
		Image:       req.Image,
	}
	product, err := h.productSvc.CreateProduct(r.Context(), params)
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusCreated, newProductResponse(product))
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	image, imageSet, err := req.image()
	if err != nil {
		h.respond.Error(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	params := service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
		ImageSet:    imageSet,
	}
	if req.Price != nil {
		params.Price = ptr.New(float64(*req.Price))
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, params)
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service update product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service delete product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, deleteProductResponse{
		Message: "Product deleted successfully",
	})
}

// productID parses the id route parameter. A malformed id cannot match any
// product, so it surfaces as Not-Found rather than a bad request.
func productID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.UUID{}, apperr.ProductNotFoundErr.WrapParent(err)
	}
	return id, nil
}
