package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"complaintbox/internal/api/v1/routes"
	"complaintbox/internal/api/v1/services"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	container := &routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(nil, t.TempDir(), logger),
	}
	return NewServer(Config{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
		Environment:  "test",
	}, container, logger)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthRoutesAbsentWithoutService(t *testing.T) {
	// The base revision of the relay ships without identity endpoints;
	// they only mount when an AuthService is wired in.
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/register", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
