package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything NewRouter mounts. Idempotency is optional.
type RouterConfig struct {
	Server        *Server
	Authenticator *Authenticator
	OpenAPI       *openapi3.T
	Idempotency   echo.MiddlewareFunc
	Metrics       *Metrics
	Gatherer      prometheus.Gatherer
	Logger        *slog.Logger
}

// NewRouter builds the echo instance serving /health, /metrics, /swagger and /api/v1.
// API requests pass authentication, schema validation and idempotency, in that order.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	validator, err := RequestValidator(cfg.OpenAPI)
	if err != nil {
		return nil, err
	}
	docs, err := DocsHandler(cfg.OpenAPI)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))
	e.Use(cfg.Metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", docs)

	api := e.Group("/api/v1", cfg.Authenticator.Middleware(), validator)
	if cfg.Idempotency != nil {
		api.Use(cfg.Idempotency)
	}
	cfg.Server.Register(api)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
