package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	producterrors "github.com/abgdnv/productapi/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func Test_Handle_TranslatesErrors(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          fmt.Errorf("failed to fetch product by ID 9: %w", producterrors.ErrProductNotFound),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"NotFoundError","message":"Product not found"}`,
		},
		{
			name:         "validation",
			err:          producterrors.Validation("Invalid product data: price is required"),
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ValidationError","message":"Invalid product data: price is required"}`,
		},
		{
			name:         "anything else",
			err:          errors.New("disk on fire"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"InternalServerError","message":"Internal server error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := Handle(discardLogger, func(http.ResponseWriter, *http.Request) error { return tc.err })
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			rr := httptest.NewRecorder()

			// when
			h.ServeHTTP(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handle_PassesThroughOnSuccess(t *testing.T) {
	h := Handle(discardLogger, func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/products/1", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func Test_RespondJSON_NilPayload(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondJSON(rr, discardLogger, http.StatusAccepted, nil)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, rr.Body.String())
}

type decodeTarget struct {
	Name    string   `json:"name"`
	Price   *float64 `json:"price"`
	InStock *bool    `json:"inStock"`
}

func Test_DecodeJSON(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{name: "valid body", body: `{"name":"Kettle","price":0,"inStock":false}`},
		{name: "unknown fields are ignored", body: `{"name":"Kettle","colour":"red"}`},
		{name: "empty body", body: ``, expectedMessage: "Request body is required"},
		{name: "malformed JSON", body: `{"name":`, expectedMessage: "Malformed JSON in request body"},
		{name: "syntax error", body: `{"name" "x"}`, expectedMessage: "Malformed JSON in request body"},
		{name: "price as string", body: `{"price":"12"}`, expectedMessage: "price must be a number"},
		{name: "inStock as number", body: `{"inStock":1}`, expectedMessage: "inStock must be a boolean"},
		{name: "name as number", body: `{"name":5}`, expectedMessage: "name must be a string"},
		{name: "array instead of object", body: `[1,2]`, expectedMessage: "Request body must be a JSON object"},
		{name: "trailing newline", body: "{\"name\":\"Kettle\"}\n"},
		{name: "trailing garbage", body: `{"name":"Kettle"} not json`, expectedMessage: "Malformed JSON in request body"},
		{name: "second JSON value", body: `{"name":"Kettle"}{"name":"Mug"}`, expectedMessage: "Malformed JSON in request body"},
		{name: "trailing number", body: `{"name":"Kettle"} 5`, expectedMessage: "Malformed JSON in request body"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tc.body))
			var dst decodeTarget

			// when
			err := DecodeJSON(req, &dst)

			// then
			if tc.expectedMessage == "" {
				require.NoError(t, err)
				assert.Equal(t, "Kettle", dst.Name)
				return
			}
			var appErr *producterrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, producterrors.KindValidation, appErr.Kind)
			assert.Equal(t, tc.expectedMessage, appErr.Message)
		})
	}
}

func Test_DecodeJSON_BodyTooLarge(t *testing.T) {
	// given
	body := `{"name":"` + strings.Repeat("a", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 16)

	// when
	err := DecodeJSON(req, &decodeTarget{})

	// then
	var appErr *producterrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Request body exceeds 16 bytes", appErr.Message)
}
