package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stylehub/catalog/internal/model"
)

// PriceValue is a price that unmarshals from either a JSON number or a
// numeric string, since the product form submits the price as text.
type PriceValue float64

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("unquote price: %w", err)
		}
		unquoted = strings.TrimSpace(unquoted)
		if unquoted == "" {
			return nil
		}
		s = unquoted
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price: %w", err)
	}

	*p = PriceValue(f)
	return nil
}

type createProductRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       PriceValue `json:"price"`
	Image       *string    `json:"image"`
}

// updateProductRequest is a partial document. Image keeps its raw JSON so
// an absent field and an explicit null can be told apart: null clears the
// stored image, absence leaves it untouched.
type updateProductRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       *PriceValue     `json:"price"`
	Image       json.RawMessage `json:"image"`
}

func (r updateProductRequest) image() (value *string, set bool, err error) {
	if len(r.Image) == 0 {
		return nil, false, nil
	}
	if string(r.Image) == "null" {
		return nil, true, nil
	}

	var s string
	if err := json.Unmarshal(r.Image, &s); err != nil {
		return nil, false, fmt.Errorf("unmarshal image: %w", err)
	}
	if s == "" {
		return nil, true, nil
	}
	return &s, true, nil
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductResponse(product model.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

type deleteProductResponse struct {
	Message string `json:"message"`
}
