package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPathUUID_ValidAndInvalid(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	id, err := pathUUID(c, "id")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	c2, _ := newContext(http.MethodGet, "/", "")
	c2.SetParamNames("id")
	c2.SetParamValues("not-a-uuid")

	_, err = pathUUID(c2, "id")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestOptionalQueryUUID_AbsentReturnsNil(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "")
	id, err := optionalQueryUUID(c, "customer_id")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestOptionalQueryUUID_PresentAndInvalid(t *testing.T) {
	valid := uuid.New()
	c, _ := newContext(http.MethodGet, "/?customer_id="+valid.String(), "")
	id, err := optionalQueryUUID(c, "customer_id")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, valid, *id)

	c2, _ := newContext(http.MethodGet, "/?customer_id=garbage", "")
	_, err = optionalQueryUUID(c2, "customer_id")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestParseOptionalUUID_NilAndEmptyReturnNil(t *testing.T) {
	id, err := parseOptionalUUID(nil)
	require.NoError(t, err)
	assert.Nil(t, id)

	empty := ""
	id, err = parseOptionalUUID(&empty)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestParseOptionalUUID_Invalid(t *testing.T) {
	bad := "not-a-uuid"
	_, err := parseOptionalUUID(&bad)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestPrincipal_ReturnsAttachedPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	want := &domain.Principal{TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleOwner}
	req = req.WithContext(domain.NewContextWithPrincipal(req.Context(), want))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	got := principal(c)
	require.NotNil(t, got)
	assert.Equal(t, want.TenantID, got.TenantID)
}

func TestCustomValidator_ReportsFieldErrors(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
	}
	v := NewValidator()
	err := v.Validate(&req{})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
