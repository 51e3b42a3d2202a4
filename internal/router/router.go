package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-api/internal/handler/catalog"
	"github.com/jwalitptl/clinic-api/internal/handler/doctor"
	"github.com/jwalitptl/clinic-api/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	config   RouterConfig
	handlers []Handler
	catalogH *catalog.Handler
	doctorH  *doctor.Handler
	metrics  *prometheus.Handler
}

type RouterConfig struct {
	Mode string
	// RateLimit of zero disables rate limiting.
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	CatalogMaxAge int
	Pages         middleware.PageSecurityConfig
}

// NewRouter installs the core middlewares. metrics may be nil.
func NewRouter(
	config RouterConfig,
	metrics *prometheus.Handler,
	catalogH *catalog.Handler,
	doctorH *doctor.Handler,
	handlers ...Handler,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New() // Use New() instead of Default() for more control

	r := &Router{
		engine:   engine,
		config:   config,
		handlers: handlers,
		catalogH: catalogH,
		doctorH:  doctorH,
		metrics:  metrics,
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}

	engine.Use(
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

// Setup mounts the JSON API under /api/v1 and the doctor form pages at the root.
func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}

	if r.catalogH != nil {
		r.catalogH.RegisterRoutes(api, middleware.Cache(middleware.PublicCache(r.config.CatalogMaxAge)))
	}

	if r.doctorH != nil {
		r.doctorH.RegisterRoutes(api)

		pages := r.engine.Group("",
			middleware.PageSecurity(r.config.Pages),
			middleware.Cache(middleware.NoStore()),
		)
		r.doctorH.RegisterPages(pages)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
