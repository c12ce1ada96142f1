package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/auth"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)
	return New(Services{}, tokens, nil, zerolog.Nop())
}

func TestRouter_HealthIsUnauthenticated(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRoutesAreUnauthenticated(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_APIRoutesRequireBearerToken(t *testing.T) {
	e := newTestRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/accounts"},
		{http.MethodGet, "/api/v1/invoices"},
		{http.MethodGet, "/api/v1/bills"},
		{http.MethodGet, "/api/v1/payments"},
		{http.MethodGet, "/api/v1/vendor-payments"},
		{http.MethodGet, "/api/v1/expenses"},
		{http.MethodGet, "/api/v1/journal-entries"},
		{http.MethodGet, "/api/v1/reports/trial-balance"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s should require a bearer token", route.method, route.path)
	}
}
