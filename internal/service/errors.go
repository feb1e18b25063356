package service

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrProductNotFound     = errors.New("product not found")
	ErrIllegalTransition   = errors.New("illegal transition of checkout status")
	ErrSignatureMismatch   = errors.New("payment signature verification failed")
	ErrSessionNotOwned     = errors.New("checkout session belongs to another buyer")
	ErrCheckoutUnavailable = errors.New("payment gateway is unavailable, try again later")
)
