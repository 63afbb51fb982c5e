// Package web serves the server-rendered catalog UI. All listing state
// (search term, price bracket, sort order, page) lives in the URL query
// and flows through the view engine, so a page is reproducible from its
// address alone. Writes go through the JSON API from a small inline
// script.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stylehub/catalog/internal/apperr"
	"github.com/stylehub/catalog/internal/model"
	"github.com/stylehub/catalog/internal/service"
	"github.com/stylehub/catalog/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Service renders the catalog UI.
type Service struct {
	logger     *slog.Logger
	productSvc service.ProductService
	tmpl       *template.Template
}

func New(log *slog.Logger, productSvc service.ProductService) (*Service, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Service{
		logger:     log.With(slog.String("service", "web")),
		productSvc: productSvc,
		tmpl:       tmpl,
	}, nil
}

func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/", s.Catalog)
	r.Get("/admin", s.Admin)
	r.Get("/products/new", s.NewProduct)
	r.Get("/products/{id}/view", s.ProductDetail)
	r.Get("/products/{id}/edit", s.EditProduct)
}

// bracketOption and sortOption back the filter selects.
type bracketOption struct {
	Value    string
	Label    string
	Selected bool
}

type sortOption struct {
	Value    string
	Label    string
	Selected bool
}

type catalogData struct {
	Params   view.Params
	Page     view.Page
	Brackets []bracketOption
	Sorts    []sortOption
	PrevURL  string
	NextURL  string
}

func (s *Service) Catalog(w http.ResponseWriter, r *http.Request) {
	params := view.ParseParams(r.URL.Query())

	products, err := s.productSvc.ListAllProducts(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := view.Apply(products, params)
	// Apply clamps the page; reflect the clamp in the state we render.
	params = params.WithPage(page.Page)

	data := catalogData{
		Params:   params,
		Page:     page,
		Brackets: bracketOptions(params.Bracket),
		Sorts:    sortOptions(params.Sort),
	}
	if page.HasPrev {
		data.PrevURL = listingURL(params.WithPage(params.Page - 1))
	}
	if page.HasNext {
		data.NextURL = listingURL(params.WithPage(params.Page + 1))
	}

	s.render(w, r, "catalog.html", data)
}

type detailData struct {
	Product model.Product
}

func (s *Service) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}

	product, err := s.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ProductNotFoundErr) {
			s.renderNotFound(w, r)
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.render(w, r, "detail.html", detailData{Product: product})
}

type adminData struct {
	Products []model.Product
}

// Admin shows every product regardless of the listing filters.
func (s *Service) Admin(w http.ResponseWriter, r *http.Request) {
	products, err := s.productSvc.ListAllProducts(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, r, "admin.html", adminData{Products: products})
}

// formData drives the shared create/edit form. A zero ID means create.
type formData struct {
	ID          string
	Name        string
	Description string
	Price       string
	Image       string
}

func (s *Service) NewProduct(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "form.html", formData{})
}

func (s *Service) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}

	product, err := s.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ProductNotFoundErr) {
			s.renderNotFound(w, r)
			return
		}
		s.renderError(w, r, err)
		return
	}

	data := formData{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       fmt.Sprintf("%g", product.Price),
	}
	if product.Image != nil {
		data.Image = *product.Image
	}

	s.render(w, r, "form.html", data)
}

func (s *Service) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "error rendering template",
			slog.String("template", name), slog.Any("error", err))
	}
}

func (s *Service) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "error serving page", slog.Any("error", err))
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}

func (s *Service) renderNotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Product not found", http.StatusNotFound)
}

func listingURL(params view.Params) string {
	query := params.Query().Encode()
	if query == "" {
		return "/"
	}
	return "/?" + query
}

func bracketOptions(selected view.PriceBracket) []bracketOption {
	brackets := []struct {
		value view.PriceBracket
		label string
	}{
		{view.BracketAny, "All Prices"},
		{view.BracketUnder50, "$0 - $50"},
		{view.Bracket50to100, "$50 - $100"},
		{view.Bracket100to200, "$100 - $200"},
		{view.BracketOver200, "$200+"},
	}

	options := make([]bracketOption, 0, len(brackets))
	for _, b := range brackets {
		options = append(options, bracketOption{
			Value:    b.value.String(),
			Label:    b.label,
			Selected: b.value == selected,
		})
	}
	return options
}

func sortOptions(selected view.Order) []sortOption {
	orders := []struct {
		value view.Order
		label string
	}{
		{view.OrderNewest, "Newest First"},
		{view.OrderPriceLow, "Price: Low to High"},
		{view.OrderPriceHigh, "Price: High to Low"},
		{view.OrderName, "Name: A to Z"},
	}

	options := make([]sortOption, 0, len(orders))
	for _, o := range orders {
		options = append(options, sortOption{
			Value:    o.value.String(),
			Label:    o.label,
			Selected: o.value == selected,
		})
	}
	return options
}
