package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buildmart/internal/store"
)

func TestGreetings(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, store.Unavailable{})

	rec := env.serve(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Civil Engineering Store Backend Running"}`, rec.Body.String())

	rec = env.serve(http.MethodGet, "/api/hello", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello from the backend API!"}`, rec.Body.String())
}

func TestSchema(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, store.Unavailable{})

	rec := env.serve(http.MethodGet, "/schema", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[map[string]map[string]any](t, rec)
	require.Contains(t, got, "user")
	require.Contains(t, got, "product")
	require.Contains(t, got, "order")
	assert.Equal(t, "Product", got["product"]["title"])
	assert.Contains(t, got["order"]["properties"], "items")
}

func TestHealth(t *testing.T) {
	t.Parallel()

	up := newTestEnv(t, newMemoryStore(t))
	assert.Equal(t, http.StatusOK, up.serve(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, up.serve(http.MethodGet, "/health/ready", nil).Code)

	down := newTestEnv(t, store.Unavailable{})
	assert.Equal(t, http.StatusOK, down.serve(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, down.serve(http.MethodGet, "/health/ready", nil).Code)
}

func TestStatusReport_Connected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, newMemoryStore(t))
	require.Equal(t, http.StatusOK, env.serve(http.MethodPost, "/api/products/seed", nil).Code)

	rec := env.serve(http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[statusReport](t, rec)
	assert.Equal(t, "running", report.Backend)
	assert.Equal(t, "connected", report.Database)
	assert.Equal(t, "set", report.DatabaseURL)
	assert.Equal(t, "Connected", report.ConnectionStatus)
	assert.Equal(t, []string{"product"}, report.Collections)
	assert.Empty(t, report.Error)
}

func TestStatusReport_Unavailable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, store.Unavailable{Reason: "DATABASE_URL is not set"})

	rec := env.serve(http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[statusReport](t, rec)
	assert.Equal(t, "running", report.Backend)
	assert.Equal(t, "not available", report.Database)
	assert.Equal(t, "not set", report.DatabaseURL)
	assert.Equal(t, "Not Connected", report.ConnectionStatus)
	assert.Empty(t, report.Collections)
	assert.Equal(t, "DATABASE_URL is not set", report.Error)
}
