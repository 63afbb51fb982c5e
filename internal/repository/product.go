package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/stylehub/catalog/internal/apperr"
	"github.com/stylehub/catalog/internal/model"
	"github.com/stylehub/catalog/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

const productCreateSQL = `
INSERT INTO products (id, name, description, price, image, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}

	if _, err := r.db.Exec(ctx, productCreateSQL,
		product.ID,
		product.Name,
		product.Description,
		price,
		product.Image,
		product.CreatedAt,
		product.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

const productGetSQL = `
SELECT id, name, description, price, image, created_at, updated_at
FROM products
WHERE id = $1
`

func (r productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, productGetSQL, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("get product by id: %w", err)
	}

	return product, nil
}

const productListAllSQL = `
SELECT id, name, description, price, image, created_at, updated_at
FROM products
ORDER BY created_at DESC, id DESC
`

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, productListAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

const productUpdateSQL = `
UPDATE products
SET name = $2, description = $3, price = $4, image = $5, updated_at = $6
WHERE id = $1
`

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}

	tag, err := r.db.Exec(ctx, productUpdateSQL,
		product.ID,
		product.Name,
		product.Description,
		price,
		product.Image,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}

	return nil
}

const productDeleteSQL = `
DELETE FROM products
WHERE id = $1
`

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, productDeleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}

	return nil
}

func numericFromFloat(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", f)); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   pgtype.Numeric
	)

	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&price,
		&product.Image,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	priceValue, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	product.Price = priceValue.Float64

	return product, nil
}
