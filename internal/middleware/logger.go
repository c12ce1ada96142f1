package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ledgerkeep/core/internal/domain"
)

// loggerContextKey is the echo.Context key a request-scoped logger is
// stashed under, mirroring the key handlers read with GetLogger.
const loggerContextKey = "logger"

// SetupLogger builds the base zerolog.Logger for the process: JSON
// output in production, a pretty console writer when format is
// "console" (local development).
func SetupLogger(levelStr, format string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.ToLower(format) == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output)
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// ZerologMiddleware logs one line per request and stores a
// request-scoped logger (carrying the request id) for handlers to pull
// with GetLogger. Must run after RequestID so the id it logs is the
// one already written to the response header.
func ZerologMiddleware(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, values echomw.RequestLoggerValues) error {
			requestID := c.Response().Header().Get(RequestIDHeader)

			reqLogger := logger.With().
				Str("request_id", requestID).
				Str("method", values.Method).
				Str("uri", values.URI).
				Str("remote_ip", values.RemoteIP).
				Logger()

			if p := domain.PrincipalFromContext(c.Request().Context()); p != nil {
				reqLogger = reqLogger.With().
					Str("tenant_id", p.TenantID.String()).
					Str("user_id", p.UserID.String()).
					Logger()
			}

			c.Set(loggerContextKey, &reqLogger)

			event := reqLogger.Info()
			if values.Error != nil {
				event = reqLogger.Error().Err(values.Error)
			}
			event.Int("status", values.Status).Dur("latency", values.Latency).Msg("request")
			return nil
		},
	})
}

// GetLogger returns the request-scoped logger ZerologMiddleware stored,
// falling back to a bare stdout logger for contexts it never ran on
// (e.g. a handler invoked directly from a test).
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(loggerContextKey).(*zerolog.Logger); ok {
		return logger
	}
	fallback := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return &fallback
}
