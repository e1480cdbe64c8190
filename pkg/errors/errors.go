package errors

import (
	"errors"
	"fmt"
)

var (
	ErrorIs = errors.Is

	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrUnsupportedFile = fmt.Errorf("unsupported file")
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")
	ErrRemitoNotFound  = fmt.Errorf("remito not found")
	ErrEmptyCart       = fmt.Errorf("cart is empty")
	ErrInternal        = fmt.Errorf("internal error")
)
