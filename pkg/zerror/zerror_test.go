package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/catalog/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")

	t.Run("Should expose status, code, and message", func(t *testing.T) {
		assert.Equal(t, zerror.StatusNotFound, notFound.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", notFound.Code())
		assert.Equal(t, "Product not found", notFound.Msg())
	})

	t.Run("Should survive fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("service get product: %w", notFound)

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
	})

	t.Run("Should keep the parent reachable after WrapParent", func(t *testing.T) {
		parent := errors.New("no rows in result set")
		err := notFound.WrapParent(parent)

		assert.Equal(t, parent, err.Parent())
		assert.Contains(t, err.Error(), "no rows in result set")
	})

	t.Run("Should not mutate the predefined error on WrapParent", func(t *testing.T) {
		_ = notFound.WrapParent(errors.New("boom"))

		assert.Nil(t, notFound.Parent())
	})
}
