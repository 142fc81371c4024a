package store

import (
	"context"
	"strings"
	"sync"

	producterrors "github.com/abgdnv/productapi/internal/errors"
	"github.com/google/uuid"
)

// InMemory implements ProductStore using a slice that keeps insertion order.
type InMemory struct {
	mu       sync.RWMutex
	products []Product
	newID    func() string
}

// NewInMemoryStore creates a new store holding the given products.
func NewInMemoryStore(initial ...Product) *InMemory {
	products := make([]Product, len(initial))
	copy(products, initial)
	return &InMemory{
		products: products,
		newID:    uuid.NewString,
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemory) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll retrieves a page of products, optionally filtered by category.
func (s *InMemory) FindAll(_ context.Context, category string, offset, limit int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0)
	skipped := 0
	for _, p := range s.products {
		if len(list) >= limit {
			break
		}
		if category != "" && p.Category != category {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// FindByName retrieves products whose name contains name, case-insensitively.
func (s *InMemory) FindByName(_ context.Context, name string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	list := make([]Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			list = append(list, p)
		}
	}
	return list, nil
}

// CountByCategory counts products per category.
func (s *InMemory) CountByCategory(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int)
	for _, p := range s.products {
		stats[p.Category]++
	}
	return stats, nil
}

// Create creates a new product, appends it and returns it.
func (s *InMemory) Create(_ context.Context, fields ProductFields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{ID: s.newID()}
	merge(&product, fields)
	s.products = append(s.products, product)

	return &product, nil
}

// Update merges fields into the product with the given ID.
func (s *InMemory) Update(_ context.Context, id string, fields ProductFields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	merge(&s.products[i], fields)
	p := s.products[i]
	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return producterrors.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (s *InMemory) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func merge(p *Product, fields ProductFields) {
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Description != nil {
		p.Description = *fields.Description
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.Category != nil {
		p.Category = *fields.Category
	}
	if fields.InStock != nil {
		p.InStock = *fields.InStock
	}
}
