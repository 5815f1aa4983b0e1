package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	r := chi.NewRouter()
	NewHandler(s, s.broker).RegisterRoutes(r)
	return r
}

func TestScheduleEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := `{
		"description": "500 Business Cards Matt",
		"misOrderQTY": 500,
		"kinds": 1,
		"printType": 1,
		"preflightedWidth": 90,
		"preflightedHeight": 55,
		"orientation": "landscape",
		"misCurrentHub": "vic",
		"misCurrentHubID": 1,
		"misDeliversToState": "vic",
		"misDeliversToPostcode": "3000"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ProductID)
	assert.Equal(t, "vic", resp.ChosenProductionHub)
	require.NotNil(t, resp.DispatchDate)
	assert.Equal(t, "2025-06-18", *resp.DispatchDate)
}

func TestScheduleEndpointRejectsBadInput(t *testing.T) {
	r := newTestRouter(t)

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/", strings.NewReader("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/", strings.NewReader(`{"description":"x"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
