package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// WithSkipper excludes requests such as health checks from the request log.
func WithSkipper(skipper middleware.Skipper) LoggerOpts {
	return func(c *middleware.RequestLoggerConfig) {
		c.Skipper = skipper
	}
}

// WithLogger sends request records to l instead of the default slog logger.
func WithLogger(l *slog.Logger) LoggerOpts {
	return func(c *middleware.RequestLoggerConfig) {
		c.LogValuesFunc = logValues(l)
	}
}

func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogLatency:       true,
		LogURI:           true,
		LogMethod:        true,
		LogRequestID:     true,
		LogContentLength: true,
		LogError:         true,
		HandleError:      true,
		LogValuesFunc:    logValues(nil),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(o)
}

func logValues(l *slog.Logger) func(echo.Context, middleware.RequestLoggerValues) error {
	return func(c echo.Context, v middleware.RequestLoggerValues) error {
		logger := l
		if logger == nil {
			logger = slog.Default()
		}

		attrs := []slog.Attr{
			slog.String("method", v.Method),
			slog.String("uri", v.URI),
			slog.Int("status", v.Status),
			slog.Duration("latency", v.Latency),
		}
		if v.RequestID != "" {
			attrs = append(attrs, slog.String("request_id", v.RequestID))
		}
		if v.ContentLength != "" {
			attrs = append(attrs, slog.String("content_length", v.ContentLength))
		}

		if v.Error == nil {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "REQUEST", attrs...)
			return nil
		}
		attrs = append(attrs, slog.String("err", v.Error.Error()))
		logger.LogAttrs(c.Request().Context(), slog.LevelError, "REQUEST_ERROR", attrs...)
		return nil
	}
}
