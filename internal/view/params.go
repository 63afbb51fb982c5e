package view

import (
	"net/url"
	"strconv"
)

// PriceBracket is one of five mutually exclusive half-open price ranges.
// A price exactly at a boundary belongs to the upper bracket.
type PriceBracket uint8

const (
	BracketAny PriceBracket = iota
	BracketUnder50
	Bracket50to100
	Bracket100to200
	BracketOver200
)

// ParsePriceBracket parses the wire form of a bracket. Unknown values
// fall back to no filtering.
func ParsePriceBracket(s string) PriceBracket {
	switch s {
	case "0-50":
		return BracketUnder50
	case "50-100":
		return Bracket50to100
	case "100-200":
		return Bracket100to200
	case "200+":
		return BracketOver200
	default:
		return BracketAny
	}
}

func (b PriceBracket) String() string {
	switch b {
	case BracketUnder50:
		return "0-50"
	case Bracket50to100:
		return "50-100"
	case Bracket100to200:
		return "100-200"
	case BracketOver200:
		return "200+"
	default:
		return ""
	}
}

// Contains reports whether price falls inside the bracket.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case BracketUnder50:
		return price < 50
	case Bracket50to100:
		return price >= 50 && price < 100
	case Bracket100to200:
		return price >= 100 && price < 200
	case BracketOver200:
		return price >= 200
	default:
		return true
	}
}

// Order is one of the four fixed sort orders.
type Order uint8

const (
	OrderNewest Order = iota
	OrderPriceLow
	OrderPriceHigh
	OrderName
)

// ParseOrder parses the wire form of a sort order. Unknown values fall
// back to newest-first.
func ParseOrder(s string) Order {
	switch s {
	case "price-low":
		return OrderPriceLow
	case "price-high":
		return OrderPriceHigh
	case "name":
		return OrderName
	default:
		return OrderNewest
	}
}

func (o Order) String() string {
	switch o {
	case OrderPriceLow:
		return "price-low"
	case OrderPriceHigh:
		return "price-high"
	case OrderName:
		return "name"
	default:
		return "newest"
	}
}

// Params is the complete view state of the product listing. Transitions
// go through the With* methods so changing a filter or the sort order
// always resets the page, and nothing else does.
type Params struct {
	Search  string
	Bracket PriceBracket
	Sort    Order
	Page    int
}

// DefaultParams is the initial view state: no filters, newest first, page 1.
func DefaultParams() Params {
	return Params{Sort: OrderNewest, Page: 1}
}

func (p Params) WithSearch(search string) Params {
	p.Search = search
	p.Page = 1
	return p
}

func (p Params) WithBracket(bracket PriceBracket) Params {
	p.Bracket = bracket
	p.Page = 1
	return p
}

func (p Params) WithSort(order Order) Params {
	p.Sort = order
	p.Page = 1
	return p
}

func (p Params) WithPage(page int) Params {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

// ParseParams decodes view state from URL query values.
func ParseParams(values url.Values) Params {
	p := DefaultParams()
	p.Search = values.Get("search")
	p.Bracket = ParsePriceBracket(values.Get("price"))
	p.Sort = ParseOrder(values.Get("sort"))

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		p.Page = page
	}

	return p
}

// Query encodes view state back into URL query values, omitting defaults.
func (p Params) Query() url.Values {
	values := url.Values{}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Bracket != BracketAny {
		values.Set("price", p.Bracket.String())
	}
	if p.Sort != OrderNewest {
		values.Set("sort", p.Sort.String())
	}
	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	return values
}
