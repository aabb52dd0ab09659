// Package router sets up the gin engine with all middlewares and routes.
package router

import (
	"net/http"

	"github.com/dogfish0918-create/Accounting-Software/internal/config"
	"github.com/dogfish0918-create/Accounting-Software/internal/controllers"
	"github.com/dogfish0918-create/Accounting-Software/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time with -ldflags "-X .../internal/router.version=..."
var version = "0.0.0"

// Version returns the version of the backend.
func Version() string {
	return version
}

// Config sets up the engine with all middlewares and the routes that do
// not belong to the API itself.
func Config(cfg *config.Config) (*gin.Engine, error) {
	if err := httputil.RegisterValidations(); err != nil {
		return nil, err
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	registry := prometheus.NewRegistry()
	metrics := newMetrics()
	if err := metrics.register(registry); err != nil {
		return nil, err
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))
	r.Use(metrics.Middleware())
	r.Use(TimeoutMiddleware(cfg.RequestTimeout))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httputil.HTTPError{Error: "this HTTP method is not allowed for the endpoint you called"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.HTTPError{Error: "there is no endpoint at this path"})
	})

	// CORS settings
	if len(cfg.CORSOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORSOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			ExposeHeaders:    []string{"Location", "X-Request-Id"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.Register(r)
	}

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	return r, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(co controllers.Controller, r *gin.Engine, group *gin.RouterGroup) {
	co.RegisterHealthzRoutes(r.Group("/healthz"))

	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)

	co.RegisterCategoryRoutes(group.Group("/categories"))
	co.RegisterRecordRoutes(group.Group("/records"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Categories string `json:"categories" example:"https://example.com/api/categories"`   // URL of the category list endpoint
	Records    string `json:"records" example:"https://example.com/api/records"`         // URL of the record collection endpoint
	Summary    string `json:"summary" example:"https://example.com/api/records/summary"` // URL of the monthly summary endpoint
	Healthz    string `json:"healthz" example:"https://example.com/healthz"`             // URL of the health check
	Version    string `json:"version" example:"https://example.com/version"`             // Endpoint returning the version of the backend
	Metrics    string `json:"metrics" example:"https://example.com/metrics"`             // Prometheus metrics
}

// GetRoot returns the link list for the API root
func GetRoot(c *gin.Context) {
	url := httputil.BaseURL(c)
	host := hostURL(url)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Categories: url + "/categories",
			Records:    url + "/records",
			Summary:    url + "/records/summary",
			Healthz:    host + "/healthz",
			Version:    host + "/version",
			Metrics:    host + "/metrics",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsVersion returns the allowed HTTP methods
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
