package check_restriction

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	checkRestriction "github.com/ruedapp/RuedApp-CoreService/internal/usecase/check_restriction"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestHandler() *Handler {
	uc := checkRestriction.NewUseCase(domain.DefaultRestrictionCalendar(), noopLogger{})
	return NewHandler(uc, noopLogger{})
}

func TestHandleRestrictedPlate(t *testing.T) {
	h := newTestHandler()

	// 2026-03-02 is a Monday; digit 0 is restricted.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restrictions/check?plate=ABC120&date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckRestrictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ABC120", resp.Plate)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, 0, resp.LastDigit)
	assert.True(t, resp.Restricted)
	require.Len(t, resp.RestrictedWindows, 2)
	assert.Equal(t, "06:00", resp.RestrictedWindows[0].Start)
}

func TestHandleUnrestrictedPlate(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restrictions/check?plate=ABC125&date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckRestrictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Restricted)
	assert.Empty(t, resp.RestrictedWindows)
}

func TestHandleMissingPlate(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restrictions/check", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "falta la placa del vehículo"}`, rec.Body.String())
}

func TestHandleLetterPlate(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restrictions/check?plate=XYZ00A&date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "placa inválida"}`, rec.Body.String())
}

func TestHandleBadDate(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restrictions/check?plate=ABC123&date=02-03-2026", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "formato de fecha inválido, se espera YYYY-MM-DD"}`, rec.Body.String())
}
