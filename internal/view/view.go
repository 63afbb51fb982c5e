// Package view derives the visible page of a product listing from the full
// product set and a set of view parameters. It is a pure package: no I/O,
// no mutation of its inputs.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stylehub/catalog/internal/model"
)

// PageSize is the fixed number of products per page.
const PageSize = 8

// Page is the result of applying Params to a product set.
type Page struct {
	Items      []model.Product
	Page       int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Apply filters, sorts, and paginates products according to params.
// The pipeline order is fixed: search filter, price-bracket filter,
// sort, paginate. The page index is clamped to the valid range, so an
// out-of-range Page never yields an out-of-range slice.
func Apply(products []model.Product, params Params) Page {
	filtered := make([]model.Product, 0, len(products))
	search := strings.ToLower(params.Search)
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if !params.Bracket.Contains(p.Price) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, params.Sort)

	totalItems := len(filtered)
	totalPages := (totalItems + PageSize - 1) / PageSize

	page := params.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:      filtered[start:end],
		Page:       page,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func sortProducts(products []model.Product, order Order) {
	switch order {
	case OrderPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case OrderPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case OrderName:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
