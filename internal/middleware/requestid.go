package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/domain"
)

// RequestIDHeader is the header requests may supply their own id on
// (load balancer or upstream gateway) and the header every response
// carries one back on.
const RequestIDHeader = echo.HeaderXRequestID

// RequestID assigns a request id before any other middleware runs, so
// the logger and every downstream handler see the same value: reused
// from the incoming header if present, generated otherwise. Unlike
// echo's own RequestID middleware, this one also threads the id onto
// the request's context via domain.NewContextWithRequestID, so service
// and repository code can log it without an echo.Context in hand.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			c.Response().Header().Set(RequestIDHeader, id)
			c.SetRequest(req.WithContext(domain.NewContextWithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}
