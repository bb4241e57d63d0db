package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		domain.EINVALID:      http.StatusBadRequest,
		domain.EUNAUTHORIZED: http.StatusUnauthorized,
		domain.EFORBIDDEN:    http.StatusForbidden,
		domain.ENOTFOUND:     http.StatusNotFound,
		domain.ECONFLICT:     http.StatusConflict,
		domain.EUNAVAILABLE:  http.StatusServiceUnavailable,
		domain.EINTERNAL:     http.StatusInternalServerError,
		"something_else":     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, handler.ErrorCodeToHTTPStatus(code), code)
	}
}

func TestErrorResponse(t *testing.T) {
	t.Run("domain error surfaces code and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/orders/xyz", nil)

		handler.ErrorResponse(w, r, domain.NotFound("order.get", "order", "xyz"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, domain.ENOTFOUND, body.Error.Code)
		assert.Equal(t, "order not found: xyz", body.Error.Message)
	})

	t.Run("internal details are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)

		handler.ErrorResponse(w, r, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Contains(t, w.Body.String(), domain.EINTERNAL)
	})

	t.Run("wrapped sentinel keeps its status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)

		err := domain.WrapError(domain.ErrEmptyCart, domain.EINVALID, "checkout.submit", "Cart is empty")
		handler.ErrorResponse(w, r, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		City string `json:"city"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"city":"Aden"}`))
		var p payload
		require.NoError(t, handler.DecodeJSON(r, &p))
		assert.Equal(t, "Aden", p.City)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		err := handler.DecodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"town":"Aden"}`))
		var p payload
		err := handler.DecodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"city":`))
		var p payload
		assert.Error(t, handler.DecodeJSON(r, &p))
	})
}
