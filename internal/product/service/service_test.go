package service

import (
	"context"
	"errors"
	"testing"

	producterrors "github.com/abgdnv/productapi/internal/errors"
	"github.com/abgdnv/productapi/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	stats    map[string]int
	error    error

	// captured arguments
	category string
	offset   int
	limit    int
	name     string
	id       string
	fields   store.ProductFields
}

func (m *mockProductStore) FindByID(_ context.Context, id string) (*store.Product, error) {
	m.id = id
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) FindAll(_ context.Context, category string, offset, limit int) ([]store.Product, error) {
	m.category, m.offset, m.limit = category, offset, limit
	return m.products, m.error
}

func (m *mockProductStore) FindByName(_ context.Context, name string) ([]store.Product, error) {
	m.name = name
	return m.products, m.error
}

func (m *mockProductStore) CountByCategory(_ context.Context) (map[string]int, error) {
	return m.stats, m.error
}

func (m *mockProductStore) Create(_ context.Context, fields store.ProductFields) (*store.Product, error) {
	m.fields = fields
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) Update(_ context.Context, id string, fields store.ProductFields) (*store.Product, error) {
	m.id, m.fields = id, fields
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, id string) error {
	m.id = id
	return m.error
}

func ptr[T any](v T) *T {
	return &v
}

func Test_ProductService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: "1", Name: "Laptop", Price: 1200, Category: "electronics", InStock: true},
			},
			expected: &ProductDto{ID: "1", Name: "Laptop", Price: 1200, Category: "electronics", InStock: true},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: producterrors.ErrProductNotFound},
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), "1")
			// then
			assert.Equal(t, "1", tc.mockStore.id)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name           string
		mockStore      *mockProductStore
		query          ListQuery
		expectedList   []ProductDto
		expectedOffset int
		expectedKind   string
		expectError    error
	}{
		{
			name:           "Success - first page",
			mockStore:      &mockProductStore{products: []store.Product{{ID: "1", Name: "Laptop"}}},
			query:          ListQuery{Page: 1, Limit: 10},
			expectedList:   []ProductDto{{ID: "1", Name: "Laptop"}},
			expectedOffset: 0,
		},
		{
			name:           "Success - offset from page and limit",
			mockStore:      &mockProductStore{products: []store.Product{}},
			query:          ListQuery{Category: "kitchen", Page: 3, Limit: 5},
			expectedList:   []ProductDto{},
			expectedOffset: 10,
		},
		{
			name:         "Error - page below one",
			mockStore:    &mockProductStore{},
			query:        ListQuery{Page: 0, Limit: 10},
			expectedKind: producterrors.KindValidation,
		},
		{
			name:         "Error - limit below one",
			mockStore:    &mockProductStore{},
			query:        ListQuery{Page: 1, Limit: -2},
			expectedKind: producterrors.KindValidation,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			query:       ListQuery{Page: 1, Limit: 10},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			list, err := service.FindAll(context.Background(), tc.query)
			// then
			if tc.expectedKind != "" {
				var appErr *producterrors.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tc.expectedKind, appErr.Kind)
				assert.Nil(t, list)
				return
			}
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, list)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedList, list)
			assert.Equal(t, tc.query.Category, tc.mockStore.category)
			assert.Equal(t, tc.expectedOffset, tc.mockStore.offset)
			assert.Equal(t, tc.query.Limit, tc.mockStore.limit)
		})
	}
}

func Test_ProductService_Search(t *testing.T) {
	// given
	mockStore := &mockProductStore{products: []store.Product{{ID: "3", Name: "Coffee Maker"}}}
	service := NewService(mockStore)

	// when
	list, err := service.Search(context.Background(), "coffee")

	// then
	require.NoError(t, err)
	assert.Equal(t, "coffee", mockStore.name)
	assert.Equal(t, []ProductDto{{ID: "3", Name: "Coffee Maker"}}, list)
}

func Test_ProductService_CountByCategory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := NewService(&mockProductStore{stats: map[string]int{"kitchen": 1}})

		stats, err := service.CountByCategory(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"kitchen": 1}, stats)
	})

	t.Run("Error - store error", func(t *testing.T) {
		ErrStoreError := errors.New("store error")
		service := NewService(&mockProductStore{error: ErrStoreError})

		stats, err := service.CountByCategory(context.Background())

		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, stats)
	})
}

func Test_ProductService_Create(t *testing.T) {
	// given
	mockStore := &mockProductStore{
		product: store.Product{ID: "new", Name: "Kettle", Description: "Steel", Price: 0, Category: "kitchen", InStock: false},
	}
	service := NewService(mockStore)
	input := ProductInput{Name: "Kettle", Description: "Steel", Price: ptr(0.0), Category: "kitchen", InStock: ptr(false)}

	// when
	created, err := service.Create(context.Background(), input)

	// then
	require.NoError(t, err)
	assert.Equal(t, &ProductDto{ID: "new", Name: "Kettle", Description: "Steel", Category: "kitchen"}, created)
	require.NotNil(t, mockStore.fields.Price)
	require.NotNil(t, mockStore.fields.InStock)
	assert.Zero(t, *mockStore.fields.Price)
	assert.False(t, *mockStore.fields.InStock)
	assert.Equal(t, "Kettle", *mockStore.fields.Name)
}

func Test_ProductService_Update(t *testing.T) {
	input := ProductInput{Name: "Phone", Description: "New", Price: ptr(1.5), Category: "electronics", InStock: ptr(true)}
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - product updated",
			mockStore: &mockProductStore{product: store.Product{ID: "2", Name: "Phone", Description: "New", Price: 1.5, Category: "electronics", InStock: true}},
			expected:  &ProductDto{ID: "2", Name: "Phone", Description: "New", Price: 1.5, Category: "electronics", InStock: true},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: producterrors.ErrProductNotFound},
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), "2", input)
			// then
			assert.Equal(t, "2", tc.mockStore.id)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{name: "Success - product deleted", mockStore: &mockProductStore{}},
		{name: "Error - product not found", mockStore: &mockProductStore{error: producterrors.ErrProductNotFound}, expectError: producterrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewService(tc.mockStore)

			err := service.DeleteByID(context.Background(), "7")

			assert.Equal(t, "7", tc.mockStore.id)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
