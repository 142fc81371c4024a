// Package web holds the HTTP plumbing shared by the API handlers:
// JSON responses, the terminal error handler and middleware.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	producterrors "github.com/abgdnv/productapi/internal/errors"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandlerFunc is an HTTP handler that reports failures by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. Errors returned by fn are written by RespondErr.
func Handle(logger *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			RespondErr(w, r, logger, err)
		}
	}
}

// RespondJSON writes payload as JSON with the given status. A nil payload writes only the status.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes the error envelope with the given status, kind and message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, kind, message string) {
	RespondJSON(w, logger, status, ErrorResponse{Error: kind, Message: message})
}

// RespondErr translates err into the error envelope.
// Errors of type *errors.Error keep their kind and status, anything else becomes a 500.
func RespondErr(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *producterrors.Error
	if errors.As(err, &appErr) {
		logger.WarnContext(r.Context(), "Request failed", "kind", appErr.Kind, "status", appErr.Status, "error", err)
		RespondError(w, logger, appErr.Status, appErr.Kind, appErr.Message)
		return
	}
	logger.ErrorContext(r.Context(), "Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
	RespondError(w, logger, http.StatusInternalServerError, producterrors.KindInternal, "Internal server error")
}

// DecodeJSON decodes the request body into dst.
// Decoding problems are reported as validation errors naming the offending field.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// the body must hold exactly one JSON value
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return nil
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return producterrors.Validation(fmt.Sprintf("Request body exceeds %d bytes", maxBytesErr.Limit))
		}
		return producterrors.Validation("Malformed JSON in request body")
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return producterrors.Validation("Request body is required")
	case errors.As(err, &maxBytesErr):
		return producterrors.Validation(fmt.Sprintf("Request body exceeds %d bytes", maxBytesErr.Limit))
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return producterrors.Validation("Request body must be a JSON object")
		}
		return producterrors.Validation(fmt.Sprintf("%s must be a %s", typeErr.Field, jsonTypeName(typeErr.Type)))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return producterrors.Validation("Malformed JSON in request body")
	default:
		return producterrors.Validation("Invalid request body")
	}
}

// jsonTypeName names t the way a client sees it in JSON.
func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
