// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	producterrors "github.com/abgdnv/productapi/internal/errors"
	"github.com/abgdnv/productapi/internal/platform/web"
	"github.com/abgdnv/productapi/internal/product/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const welcomeMessage = "Welcome to the Product API! Go to /api/products to see all products."

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		service:  service,
		validate: validate,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Welcome)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", web.Handle(h.logger, h.FindAll))
		r.Post("/", web.Handle(h.logger, h.Create))

		r.Get("/search/{name}", web.Handle(h.logger, h.Search))
		r.Get("/stats/count-by-category", web.Handle(h.logger, h.CountByCategory))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", web.Handle(h.logger, h.FindByID))
			r.Put("/", web.Handle(h.logger, h.Update))
			r.Delete("/", web.Handle(h.logger, h.DeleteByID))
		})
	})
}

// Welcome answers the root path with a short pointer to the product endpoints.
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeMessage))
}

// FindAll lists products with optional category filter and page/limit pagination.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) error {
	page, err := web.QueryIntGt(r, "page", service.DefaultPage, 0)
	if err != nil {
		return err
	}
	limit, err := web.QueryIntGt(r, "limit", service.DefaultLimit, 0)
	if err != nil {
		return err
	}
	query := service.ListQuery{
		Category: r.URL.Query().Get("category"),
		Page:     page,
		Limit:    limit,
	}
	h.logger.DebugContext(r.Context(), "Received request to find all products",
		"category", query.Category, "page", query.Page, "limit", query.Limit)

	list, err := h.service.FindAll(r.Context(), query)
	if err != nil {
		return err
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
	return nil
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
	return nil
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	input, err := h.decodeProduct(r)
	if err != nil {
		return err
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
	return nil
}

// Update replaces the fields of an existing product with the request body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	input, err := h.decodeProduct(r)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
	return nil
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Search finds products whose name contains the path parameter, ignoring case.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, "name")
	h.logger.DebugContext(r.Context(), "Received request to search products", "name", name)

	list, err := h.service.Search(r.Context(), name)
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
	return nil
}

// CountByCategory reports how many products each category holds.
func (h *Handler) CountByCategory(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.CountByCategory(r.Context())
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, stats)
	return nil
}

// NotFound answers requests that match no route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	web.RespondErr(w, r, h.logger, producterrors.NotFound(fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path)))
}

// MethodNotAllowed answers requests whose path exists but not for the used method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	web.RespondError(w, h.logger, http.StatusMethodNotAllowed, "MethodNotAllowed",
		fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path))
}

// decodeProduct parses and validates a product body.
func (h *Handler) decodeProduct(r *http.Request) (service.ProductInput, error) {
	var input service.ProductInput
	if err := web.DecodeJSON(r, &input); err != nil {
		return input, err
	}
	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			problems := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				problems = append(problems, describe(fieldErr))
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", problems)
			return input, producterrors.Validation("Invalid product data: " + strings.Join(problems, ", "))
		}
		return input, fmt.Errorf("failed to validate product: %w", err)
	}
	return input, nil
}

func describe(fieldErr validator.FieldError) string {
	if fieldErr.Tag() == "required" {
		return fieldErr.Field() + " is required"
	}
	return fieldErr.Field() + " failed on rule: " + fieldErr.Tag()
}
