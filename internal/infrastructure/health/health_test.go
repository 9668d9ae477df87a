package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

type fakeReporter struct {
	err error
}

func (r *fakeReporter) LastRun() (time.Time, error) {
	return time.Now(), r.err
}

func TestHealthHandler(t *testing.T) {
	server := NewHealthServer(8080, zap.NewNop(), &fakePinger{}, nil, &fakeReporter{})

	rec := httptest.NewRecorder()
	server.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Components["storage"])
	assert.Equal(t, "healthy", status.Components["last_scrape"])
}

func TestReadyHandler_Unhealthy(t *testing.T) {
	server := NewHealthServer(8080, zap.NewNop(), &fakePinger{err: errors.New("connection refused")}, nil, &fakeReporter{})

	rec := httptest.NewRecorder()
	server.readyHandler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy", status.Components["storage"])
}

func TestReadyHandler_FailedLastScrape(t *testing.T) {
	server := NewHealthServer(8080, zap.NewNop(), &fakePinger{}, nil, &fakeReporter{err: errors.New("scrape failed")})

	rec := httptest.NewRecorder()
	server.readyHandler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyHandler_NoComponents(t *testing.T) {
	server := NewHealthServer(8080, zap.NewNop(), nil, nil, nil)

	rec := httptest.NewRecorder()
	server.readyHandler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
