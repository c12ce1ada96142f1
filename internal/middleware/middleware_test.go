package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/domain"
)

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// fakeTenantLookup always resolves, unless a tenant id is explicitly
// listed as missing.
type fakeTenantLookup struct {
	missing map[uuid.UUID]bool
}

func (f *fakeTenantLookup) GetTenant(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	if f.missing[id] {
		return nil, domain.ErrTenantNotFound
	}
	return &domain.Tenant{ID: id}, nil
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen = domain.RequestIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")
	c.Request().Header.Set(RequestIDHeader, "upstream-id-123")

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "upstream-id-123", rec.Header().Get(RequestIDHeader))
}

func TestBearerAuth_MissingHeaderRejected(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	c, _ := newTestContext(http.MethodGet, "/")
	handler := BearerAuth(issuer, &fakeTenantLookup{})(func(c echo.Context) error {
		t.Fatal("handler should not run without a token")
		return nil
	})

	err = handler(c)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestBearerAuth_InvalidTokenRejected(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	c, _ := newTestContext(http.MethodGet, "/")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")

	handler := BearerAuth(issuer, &fakeTenantLookup{})(func(c echo.Context) error {
		t.Fatal("handler should not run with an invalid token")
		return nil
	})

	err = handler(c)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestBearerAuth_ValidTokenAttachesPrincipal(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	userID := uuid.New()
	tenantID := uuid.New()
	token, err := issuer.Issue(userID, tenantID, domain.RoleOwner)
	require.NoError(t, err)

	c, _ := newTestContext(http.MethodGet, "/")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	var principal *domain.Principal
	handler := BearerAuth(issuer, &fakeTenantLookup{})(func(c echo.Context) error {
		principal = domain.PrincipalFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	require.NotNil(t, principal)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, tenantID, principal.TenantID)
	assert.Equal(t, domain.RoleOwner, principal.Role)
}

func TestBearerAuth_DeletedTenantRejected(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	tenantID := uuid.New()
	token, err := issuer.Issue(uuid.New(), tenantID, domain.RoleOwner)
	require.NoError(t, err)

	c, _ := newTestContext(http.MethodGet, "/")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	lookup := &fakeTenantLookup{missing: map[uuid.UUID]bool{tenantID: true}}
	handler := BearerAuth(issuer, lookup)(func(c echo.Context) error {
		t.Fatal("handler should not run for a deleted tenant")
		return nil
	})

	err = handler(c)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestSecurityHeaders_SetsDefaults(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	handler := SecurityHeaders(DefaultSecurityHeadersConfig())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiter_AllowsBurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0, BurstSize: 2})
	defer rl.Stop()

	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"), "third request within the burst should be refused")

	assert.True(t, rl.Allow("client-b"), "a different key has its own bucket")
}

func TestHTTPErrorHandler_MapsNotFoundToStatus404(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	HTTPErrorHandler(c, domain.NotFound("test.op", "account", uuid.New().String()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ENOTFOUND)
}

func TestHTTPErrorHandler_HidesInternalErrorDetail(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	HTTPErrorHandler(c, domain.Internal(assert.AnError, "test.op", "failed to save"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHTTPErrorHandler_ValidationErrorReportsFields(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	err := domain.NewValidationError("test.op", "amount", "must be positive")
	HTTPErrorHandler(c, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount")
}
