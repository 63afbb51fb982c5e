package apperr

import "github.com/stylehub/catalog/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	ProductUnexpectedCode = "PRODUCT_UNEXPECTED"
)

var (
	ValidationErr      = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
)
