package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAccountName is returned for empty or oversized display names.
var ErrInvalidAccountName = errors.New("invalid account name")

// ErrInvalidNotes is returned for oversized notes.
var ErrInvalidNotes = errors.New("invalid notes")

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxNotesLength       = 2000
	MaxItemsPerBill      = 200
)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateLineItem validates one transaction line.
func ValidateLineItem(item LineItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrInvalidItemName
	}

	if item.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s", ErrInvalidQuantity, item.Name)
	}

	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidUnitPrice, item.Name)
	}

	return nil
}

// ValidateNotes bounds the free-text notes field.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidNotes, MaxNotesLength)
	}

	return nil
}
