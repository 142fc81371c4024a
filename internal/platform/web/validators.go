package web

import (
	"fmt"
	"net/http"
	"strconv"

	producterrors "github.com/abgdnv/productapi/internal/errors"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// gt returns a ParamValidator that checks if the argument is greater than the value captured in the closure.
func gt(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue > closedValue
	})
}

// QueryIntGte reads an optional integer query parameter that must be >= min.
func QueryIntGte(r *http.Request, key string, defaultValue int, min int64) (int, error) {
	return queryInt(r, key, defaultValue, gte(min))
}

// QueryIntGt reads an optional integer query parameter that must be > min.
func QueryIntGt(r *http.Request, key string, defaultValue int, min int64) (int, error) {
	return queryInt(r, key, defaultValue, gt(min))
}

// queryInt returns defaultValue when the parameter is absent and a validation error when it is malformed.
func queryInt(r *http.Request, key string, defaultValue int, pValidator ParamValidator) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		return 0, producterrors.Validation(fmt.Sprintf("Invalid %s number: %s", key, value))
	}
	return int(intValue), nil
}
