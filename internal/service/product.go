package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stylehub/catalog/internal/model"
	"github.com/stylehub/catalog/internal/repository"
	"github.com/stylehub/catalog/internal/storage/db"
	"github.com/stylehub/catalog/pkg/validator"
)

// CreateProductParams requires a non-zero price: a missing or empty
// price field decodes to zero and is rejected, like the rest of the
// required fields.
type CreateProductParams struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"required,gte=0"`
	Image       *string `validate:"omitempty,url"`
}

// UpdateProductParams carries a partial update. Nil fields are left
// unchanged, as are empty-string names/descriptions and zero prices.
// Image is applied whenever ImageSet is true, including a nil value
// which clears the stored image.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *float64 `validate:"omitempty,gte=0"`
	Image       *string  `validate:"omitempty,url"`
	ImageSet    bool
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	db          db.DB
	productRepo repository.ProductRepository
	validator   validator.Validator
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	validator validator.Validator,
) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		validator:   validator,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate create product params: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Image:       params.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product by id: %w", err)
	}

	return product, nil
}

func (s *productService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate update product params: %w", err)
	}

	var updated model.Product

	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		repo := s.productRepo.WithDB(txDB)

		product, err := repo.GetProductByID(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get product by id: %w", err)
		}

		applyUpdate(&product, params)
		product.UpdatedAt = time.Now()

		if err := repo.UpdateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		updated = product
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("product repository delete product: %w", err)
	}

	return nil
}

func applyUpdate(product *model.Product, params UpdateProductParams) {
	if params.Name != nil && *params.Name != "" {
		product.Name = *params.Name
	}
	if params.Description != nil && *params.Description != "" {
		product.Description = *params.Description
	}
	if params.Price != nil && *params.Price != 0 {
		product.Price = *params.Price
	}
	if params.ImageSet {
		product.Image = params.Image
	}
}
