package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-dev/hr-admin/backend/internal/config"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	h, err := NewHandler(&config.Config{}, nil, nil, nil)
	require.NoError(t, err)

	return h
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	resp := Response{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestSuccessResponseEnvelope(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.successResponse(rec, req, "done", map[string]int{"n": 3})

	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "done", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestDomainErrorKeepsSentinelMessage(t *testing.T) {
	h := newTestHandler(t)

	sentinels := []error{
		fmt.Errorf("shift 7: %w", domain.ErrNotFound),
		fmt.Errorf("employee list is empty: %w", domain.ErrInvalidInput),
		fmt.Errorf("cannot delete the default shift: %w", domain.ErrInvariantViolation),
		fmt.Errorf("shift 7 was modified concurrently: %w", domain.ErrConflict),
	}

	for _, err := range sentinels {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.domainError(rec, req, err)

		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, err.Error(), resp.Message)
	}
}

func TestDomainErrorHidesUnknownErrors(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.domainError(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Message)
}

func TestBadRequestTranslatesValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	err := h.validate.Struct(req)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	h.badRequest(rec, r, err)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "required")
}
