package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewops/internal/models"
)

func TestHealth_ReportsStatusAndSessions(t *testing.T) {
	svc := authedService()
	hc := NewHealthController(svc)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Sessions)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealth_RejectsNonGet(t *testing.T) {
	hc := NewHealthController(&mockService{users: map[string]models.User{}})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()

	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h0m0s"},
		{90 * time.Second, "0h1m30s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h4m5s"},
		{26 * time.Hour, "26h0m0s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatDuration(tc.in))
	}
}
