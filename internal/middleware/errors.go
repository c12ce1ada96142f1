package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ledgerkeep/core/internal/domain"
)

// errorResponse is the JSON body every error produces, keyed the same
// way on every endpoint so a client never has to special-case a route.
type errorResponse struct {
	Error            string            `json:"error"`
	Code             string            `json:"code"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
	RequestID        string            `json:"request_id,omitempty"`
}

// statusForCode maps the closed domain.Error taxonomy to HTTP status,
// per the codes documented in domain.Error.
func statusForCode(code string) int {
	switch code {
	case domain.EINVALID, domain.EPRECONDITION:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EGONE:
		return http.StatusGone
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler replaces echo's default error handler so every error
// returned from a handler or middleware — domain error, validation
// error, or anything else — lands on the wire as the same JSON shape
// and is logged once, here, rather than at each call site.
func HTTPErrorHandler(c echo.Context, err error) {
	if c.Response().Committed {
		return
	}

	logger := GetLogger(c)
	requestID := c.Response().Header().Get(RequestIDHeader)

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(c, logger, requestID, http.StatusBadRequest, domain.EINVALID, "validation failed", ve.Fields, err)
		return
	}

	var de *domain.Error
	if errors.As(err, &de) {
		status := statusForCode(de.Code)
		message := domain.ErrorMessage(err)
		writeJSON(c, logger, requestID, status, de.Code, message, nil, err)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message, _ := he.Message.(string)
		if message == "" {
			message = http.StatusText(he.Code)
		}
		writeJSON(c, logger, requestID, he.Code, codeForHTTPStatus(he.Code), message, nil, err)
		return
	}

	writeJSON(c, logger, requestID, http.StatusInternalServerError, domain.EINTERNAL, "An internal error occurred. Please try again later.", nil, err)
}

func writeJSON(c echo.Context, logger *zerolog.Logger, requestID string, status int, code, message string, fields map[string]string, err error) {
	event := logger.Error()
	if status >= 500 {
		event = event.Err(err)
	}
	event.Int("status", status).Str("code", code).Msg("request error")

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorResponse{
		Error:            message,
		Code:             code,
		ValidationErrors: fields,
		RequestID:        requestID,
	})
}

func codeForHTTPStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.EINVALID
	case http.StatusUnauthorized:
		return domain.EUNAUTHORIZED
	case http.StatusForbidden:
		return domain.EFORBIDDEN
	case http.StatusNotFound:
		return domain.ENOTFOUND
	case http.StatusConflict:
		return domain.ECONFLICT
	case http.StatusTooManyRequests:
		return domain.ERATELIMIT
	case http.StatusNotImplemented:
		return domain.ENOTIMPL
	default:
		return domain.EINTERNAL
	}
}
