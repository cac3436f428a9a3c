// Package errors provides custom error types for item-related operations.
package errors

import "errors"

// ErrItemNotFound is returned when no item has the requested ID.
var ErrItemNotFound = errors.New("item not found")
