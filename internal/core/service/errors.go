package service

import "github.com/go-faster/errors"

var (
	ErrOutOfStock       = errors.New("product out of stock")
	ErrProductNotFound  = errors.New("product not found")
	ErrUnknownPage      = errors.New("unknown page")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrLoopClosed       = errors.New("event loop closed")
)
