package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("x: %w", domain.ErrValidation), http.StatusBadRequest},
		{"field", domain.NewFieldError("phone", "bad"), http.StatusBadRequest},
		{"not found", fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("x: %w", domain.ErrConflict), http.StatusConflict},
		{"unavailable", fmt.Errorf("x: %w", domain.ErrUnavailable), http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestRespondDomainError_FieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("wrap: %w", domain.NewFieldError("phone", "telefone inválido")), "x")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "phone", body.Field)
	assert.Equal(t, "telefone inválido", body.Error)
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("pq: password auth failed: %w", domain.ErrUnavailable), "x")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "a", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestParseBookingsQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/bookings?service=Audit&dateFrom=2025-09-01&q=&page=3", nil)
	req, err := ParseBookingsQuery(r)
	require.NoError(t, err)

	require.NotNil(t, req.ServiceName)
	assert.Equal(t, "Audit", *req.ServiceName)
	require.NotNil(t, req.DateFrom)
	assert.Equal(t, "2025-09-01", *req.DateFrom)
	assert.Nil(t, req.DateTo)
	assert.Nil(t, req.SearchText)
	assert.Equal(t, 3, req.Page)

	r = httptest.NewRequest(http.MethodGet, "/bookings?page=two", nil)
	_, err = ParseBookingsQuery(r)
	fe, ok := domain.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, QueryPage, fe.Field)
}
