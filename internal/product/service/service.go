// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	producterrors "github.com/abgdnv/productapi/internal/errors"
	"github.com/abgdnv/productapi/internal/product/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// FindAll returns one page of products, optionally filtered by category.
	// Returns an empty slice if the page is past the end.
	FindAll(ctx context.Context, query ListQuery) ([]ProductDto, error)

	// Search returns products whose name contains the given text, ignoring case.
	Search(ctx context.Context, name string) ([]ProductDto, error)

	// CountByCategory returns the number of products per category.
	CountByCategory(ctx context.Context) (map[string]int, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, input ProductInput) (*ProductDto, error)

	// Update merges the input into an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductInput is the body accepted when creating or updating a product.
// Price and InStock are pointers so that 0 and false count as present.
type ProductInput struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	InStock     *bool    `json:"inStock"     validate:"required"`
}

// ListQuery selects a page of the catalog. Page is 1-based.
type ListQuery struct {
	Category string
	Page     int
	Limit    int
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a page of products and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context, query ListQuery) ([]ProductDto, error) {
	if query.Page < 1 {
		return nil, producterrors.Validation(fmt.Sprintf("page must be a positive integer, got %d", query.Page))
	}
	if query.Limit < 1 {
		return nil, producterrors.Validation(fmt.Sprintf("limit must be a positive integer, got %d", query.Limit))
	}
	offset := (query.Page - 1) * query.Limit

	products, err := s.repository.FindAll(ctx, query.Category, offset, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// Search retrieves products by name substring.
func (s *Service) Search(ctx context.Context, name string) ([]ProductDto, error) {
	products, err := s.repository.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by name %q: %w", name, err)
	}
	return toDtos(products), nil
}

// CountByCategory returns product counts keyed by category.
func (s *Service) CountByCategory(ctx context.Context) (map[string]int, error) {
	stats, err := s.repository.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	return stats, nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, input ProductInput) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, toFields(input))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update modifies an existing product and returns the result as a ProductDto.
func (s *Service) Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, toFields(input))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

func toFields(input ProductInput) store.ProductFields {
	return store.ProductFields{
		Name:        &input.Name,
		Description: &input.Description,
		Price:       input.Price,
		Category:    &input.Category,
		InStock:     input.InStock,
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		InStock:     product.InStock,
	}
}

func toDtos(products []store.Product) []ProductDto {
	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}
	return productDTOs
}
