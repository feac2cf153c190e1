package router

import (
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	prefix     string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithPrefix mounts every registrar under prefix, e.g. "/api/v1"
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup(middlewares ...gin.HandlerFunc) {
	api := r.engine.Group(r.prefix, middlewares...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup collects the routes of one resource under a common prefix
type DomainGroup struct {
	prefix     string
	routes     []route
	middleware []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Orders    *handler.OrderHandler
	SalesView *handler.SalesViewHandler
	Health    *handler.HealthHandler
}

// Options configure the engine built by New
type Options struct {
	HTTP        config.HTTPConfig
	ServiceName string
	Tracing     bool
	// Verifier enables bearer authentication on the business routes when set
	Verifier middleware.TokenVerifier
	Prefix   string
	Logger   *zap.Logger
}

// New builds the gin engine with the middleware chain and every route.
// Probes stay outside the prefix and never require a token.
func New(h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, ignoring", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: opts.ServiceName, Enabled: opts.Tracing}),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORS(opts.HTTP),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
	)
	engine.NoRoute(middleware.NoRoute())

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
		engine.GET("/ready", h.Health.Ready)
	}

	var protected []gin.HandlerFunc
	if opts.Verifier != nil {
		protected = append(protected, middleware.Authenticate(middleware.AuthConfig{
			Verifier: opts.Verifier,
			Logger:   log,
		}))
	}

	r := NewRouter(engine, WithPrefix(opts.Prefix))
	if h.Orders != nil {
		r.Register(NewDomainGroup("/orders").
			POST("", h.Orders.Create).
			GET("", h.Orders.List).
			GET("/commission-summary", h.Orders.CommissionSummary).
			GET("/:id", h.Orders.GetByID).
			PUT("/:id/financials", h.Orders.UpdateFinancials))
	}
	if h.SalesView != nil {
		r.Register(NewDomainGroup("/sales-view").
			GET("", h.SalesView.List))
	}
	r.Setup(protected...)

	return engine
}
