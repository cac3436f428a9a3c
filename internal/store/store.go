// Package store provides an interface for item storage operations.
package store

import "context"

// Item is a stored inventory record. The ID is assigned by the store and never changes.
type Item struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Quantity int32  `db:"quantity"`
}

// ItemStore is an interface for item storage operations.
// Absence of a row is reported through the boolean result, never as an error.
type ItemStore interface {
	// ListAll returns every item ordered by ID. Returns an empty slice if no items exist.
	ListAll(ctx context.Context) ([]Item, error)

	// FindByID retrieves a single item. The boolean is false if no item has the given ID.
	FindByID(ctx context.Context, id int64) (Item, bool, error)

	// Insert stores a new item and returns it with its assigned ID.
	Insert(ctx context.Context, name string, quantity int32) (Item, error)

	// Update overwrites name and quantity of an existing item.
	// The boolean is false if no item has the given ID; nothing is created in that case.
	Update(ctx context.Context, id int64, name string, quantity int32) (Item, bool, error)

	// Exists reports whether an item with the given ID is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes the item with the given ID. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id int64) error
}
