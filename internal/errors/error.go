// Package errors provides the error kinds the product API reports to clients.
package errors

import "net/http"

// Kinds reported in the "error" field of the response envelope.
const (
	KindNotFound   = "NotFoundError"
	KindValidation = "ValidationError"
	KindInternal   = "InternalServerError"
)

// Error is an error that carries the HTTP status and kind it should be reported with.
type Error struct {
	Kind    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound creates a 404 error for a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Validation creates a 400 error for a request that failed input checks.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = NotFound("Product not found")
