package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateName    = errors.New("account with this name already exists")
	ErrAccountKindMatch = errors.New("entry kind does not match account kind")

	// Entry errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// Input errors
	ErrNoItems                = errors.New("transaction has no items")
	ErrTooManyItems           = errors.New("transaction has too many items")
	ErrInvalidItemName        = errors.New("item name cannot be empty")
	ErrInvalidQuantity        = errors.New("item quantity must be positive")
	ErrInvalidUnitPrice       = errors.New("item unit price must not be negative")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidAccountKind     = errors.New("invalid account kind")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrInvalidPaymentKind     = errors.New("invalid payment kind")
)
