package controllers

import (
	"fragments/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data["k1"] = "v"
	store.Data["k2"] = "v"
	hc := NewHealthController(store)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(2), resp.StoreEntries)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, float64(0))
}

func TestHealthController_RejectsPost(t *testing.T) {
	hc := NewHealthController(testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "1h1m5s", formatDuration(time.Hour+time.Minute+5*time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
