package view_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylehub/catalog/internal/view"
)

func TestParamsTransitions(t *testing.T) {
	params := view.DefaultParams().WithPage(3)

	t.Run("Should reset the page when the search term changes", func(t *testing.T) {
		assert.Equal(t, 1, params.WithSearch("tee").Page)
	})

	t.Run("Should reset the page when the bracket changes", func(t *testing.T) {
		assert.Equal(t, 1, params.WithBracket(view.BracketOver200).Page)
	})

	t.Run("Should reset the page when the sort order changes", func(t *testing.T) {
		assert.Equal(t, 1, params.WithSort(view.OrderName).Page)
	})

	t.Run("Should keep filters when only the page changes", func(t *testing.T) {
		next := view.DefaultParams().WithSearch("tee").WithPage(2)

		assert.Equal(t, "tee", next.Search)
		assert.Equal(t, 2, next.Page)
	})

	t.Run("Should floor the page at one", func(t *testing.T) {
		assert.Equal(t, 1, params.WithPage(-4).Page)
	})
}

func TestParamsQueryRoundTrip(t *testing.T) {
	t.Run("Should round-trip through URL query values", func(t *testing.T) {
		params := view.Params{
			Search:  "denim",
			Bracket: view.Bracket100to200,
			Sort:    view.OrderPriceHigh,
			Page:    2,
		}

		assert.Equal(t, params, view.ParseParams(params.Query()))
	})

	t.Run("Should omit defaults from the query", func(t *testing.T) {
		assert.Empty(t, view.DefaultParams().Query())
	})

	t.Run("Should fall back to defaults on unknown values", func(t *testing.T) {
		values := url.Values{}
		values.Set("price", "banana")
		values.Set("sort", "oldest")
		values.Set("page", "-1")

		params := view.ParseParams(values)

		assert.Equal(t, view.BracketAny, params.Bracket)
		assert.Equal(t, view.OrderNewest, params.Sort)
		assert.Equal(t, 1, params.Page)
	})
}

func TestPriceBracketContains(t *testing.T) {
	t.Run("Should treat brackets as half-open", func(t *testing.T) {
		assert.True(t, view.BracketUnder50.Contains(0))
		assert.False(t, view.BracketUnder50.Contains(50))
		assert.True(t, view.Bracket50to100.Contains(50))
		assert.False(t, view.Bracket50to100.Contains(100))
		assert.True(t, view.Bracket100to200.Contains(100))
		assert.False(t, view.Bracket100to200.Contains(200))
		assert.True(t, view.BracketOver200.Contains(200))
	})

	t.Run("Should accept everything when unset", func(t *testing.T) {
		assert.True(t, view.BracketAny.Contains(0))
		assert.True(t, view.BracketAny.Contains(10000))
	})
}
