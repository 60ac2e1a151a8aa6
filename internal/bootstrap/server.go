package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"thn-proxy/internal/adapter/handler"
	appmiddleware "thn-proxy/middleware"
	"thn-proxy/utils/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

const healthPath = "/health"

// NewHTTPServer creates the Echo server for the public API.
// ctx bounds background work owned by the middleware.
func NewHTTPServer(ctx context.Context, deps *Dependencies, otelEnabled bool, otelServiceName string) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewErrorHandler(deps.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		},
	}))
	e.Use(appmiddleware.SecurityHeaders())

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == healthPath
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			cacheStatus := c.Response().Header().Get(appmiddleware.CacheStatusHeader)
			if v.Error == nil {
				deps.Logger.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"cache", cacheStatus,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				deps.Logger.WarnContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Use(appmiddleware.GetOnly())
	apiKey := cfg.APIKey
	if cfg.AllowEmptyAPIKey && apiKey == "" {
		deps.Logger.WarnContext(ctx, "API key check disabled")
	}
	e.Use(appmiddleware.APIKey(apiKey, appmiddleware.PathSkipper(healthPath)))

	var routeMW []echo.MiddlewareFunc
	if cfg.RateLimitPerMinute > 0 {
		rl := appmiddleware.NewRateLimiter(ctx, appmiddleware.PerMinute(cfg.RateLimitPerMinute), cfg.RateLimitBurst)
		routeMW = append(routeMW, rl.Middleware())
	}

	e.GET(healthPath, deps.HealthHandler.Handle)
	e.GET("/latest", deps.LatestHandler.Handle, routeMW...)
	e.GET("/news", deps.NewsHandler.Handle, routeMW...)
	e.GET("/content", deps.ContentHandler.Handle, routeMW...)

	return e
}

// NewMetricsServer exposes the Prometheus registry on its own port.
func NewMetricsServer(deps *Dependencies) *http.Server {
	cfg := deps.Config

	mux := http.NewServeMux()
	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{
		ErrorLog: slogErrorLog{logger: deps.Logger},
	}))

	return &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// slogErrorLog adapts the process logger to promhttp.Logger.
type slogErrorLog struct {
	logger *slog.Logger
}

func (l slogErrorLog) Println(v ...any) {
	l.logger.Error("metrics handler error", "detail", v)
}
