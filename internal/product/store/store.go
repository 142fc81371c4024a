// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product entity in the store.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// ProductFields carries the values to write on create or update.
// Nil fields are left untouched by Update.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	InStock     *bool
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll returns products in insertion order, optionally restricted to a category,
	// skipping offset matches and returning at most limit items.
	// Returns an empty slice if nothing matches.
	FindAll(ctx context.Context, category string, offset, limit int) ([]Product, error)

	// FindByName returns products whose name contains the given text, ignoring case.
	FindByName(ctx context.Context, name string) ([]Product, error)

	// CountByCategory returns the number of products in each category.
	CountByCategory(ctx context.Context) (map[string]int, error)

	// Create appends a new product with a generated ID.
	Create(ctx context.Context, fields ProductFields) (*Product, error)

	// Update merges the non-nil fields into an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, fields ProductFields) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}
