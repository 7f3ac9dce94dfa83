package services

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("actor is not allowed to perform this action")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrAlreadyPaid         = errors.New("payment has already been made")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrGateway             = errors.New("payment gateway error")
	ErrMealUnavailable     = errors.New("meal is no longer available")
	ErrMultipleKitchens    = errors.New("cart contains meals from more than one kitchen")
	ErrEmptyCart           = errors.New("cart has no items")
	ErrCartCheckedOut      = errors.New("cart has already been checked out")
)
