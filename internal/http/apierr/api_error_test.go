package apierr_test

import (
	"errors"
	"net/http"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/catalog/internal/apperr"
	"github.com/stylehub/catalog/internal/http/apierr"
	"github.com/stylehub/catalog/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Run("Should map a not-found error to 404 with its message", func(t *testing.T) {
		res := apierr.New(apperr.ProductNotFoundErr)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Product not found", res.Error)
	})

	t.Run("Should map a wrapped domain error the same way", func(t *testing.T) {
		err := apperr.ProductNotFoundErr.WrapParent(errors.New("no rows in result set"))

		res := apierr.New(err)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Product not found", res.Error)
	})

	t.Run("Should map validation failures to 400", func(t *testing.T) {
		res := apierr.New(apperr.ValidationErr)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Should describe struct validation errors field by field", func(t *testing.T) {
		type input struct {
			Name  string  `validate:"required"`
			Price float64 `validate:"gte=0"`
		}
		err := govalidator.New().Struct(input{Price: -1})
		require.Error(t, err)

		res := apierr.New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, res.Error, "name field is required")
		assert.Contains(t, res.Error, "price must be greater than or equal to 0")
	})

	t.Run("Should hide unknown errors behind a generic 500", func(t *testing.T) {
		res := apierr.New(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "an unknown error occurred", res.Error)
		assert.NotContains(t, res.Error, "pq:")
	})
}

func TestZErrorStatusToHTTPStatus(t *testing.T) {
	cases := map[zerror.Status]int{
		zerror.StatusNotFound:            http.StatusNotFound,
		zerror.StatusValidationFailed:    http.StatusBadRequest,
		zerror.StatusBadRequest:          http.StatusBadRequest,
		zerror.StatusConflict:            http.StatusConflict,
		zerror.StatusInternalServerError: http.StatusInternalServerError,
		zerror.StatusUnknown:             http.StatusInternalServerError,
	}

	for status, want := range cases {
		assert.Equal(t, want, apierr.ZErrorStatusToHTTPStatus(status))
	}
}
