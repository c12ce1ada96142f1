// Package api wires the accounting core's services to HTTP, as a thin
// echo handler layer: each handler binds and validates a request body,
// calls exactly one service method, and renders the result. No business
// rule lives here — every invariant belongs to the service or posting
// layer underneath.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/domain"
)

// CustomValidator adapts go-playground/validator to echo.Validator so
// every handler can call c.Validate(&req) after c.Bind(&req).
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the shared struct validator registered on the
// echo instance at startup.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			var out error
			for _, fe := range verrs {
				out = domain.AddFieldError(out, fe.Field(), fe.Tag())
			}
			return out
		}
		return domain.Invalid("api.validate", err.Error())
	}
	return nil
}

// envelope is the success response shape every endpoint shares:
// {"success": true, "data": ...}.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// bindAndValidate reads and validates a JSON request body in one step.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("api.bind", "malformed request body")
	}
	return c.Validate(req)
}

// pathUUID parses the named path parameter as a uuid, wrapping a parse
// failure as a domain validation error rather than a generic 400.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.Invalid("api.pathUUID", name+" must be a valid uuid")
	}
	return id, nil
}

// optionalQueryUUID parses a query parameter as a uuid if present,
// returning nil if the parameter is absent or empty.
func optionalQueryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.Invalid("api.optionalQueryUUID", name+" must be a valid uuid")
	}
	return &id, nil
}

// principal returns the authenticated caller's identity. Handlers run
// behind middleware.BearerAuth, so this is always present.
func principal(c echo.Context) *domain.Principal {
	return domain.RequirePrincipal(c.Request().Context())
}
