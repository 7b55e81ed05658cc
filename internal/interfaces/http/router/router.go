package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under a versioned API prefix.
// Registrars added with Register are publicly reachable; registrars added
// with RegisterProtected sit behind the configured auth middleware.
type Router struct {
	engine         *gin.Engine
	apiVersion     string
	authMiddleware []gin.HandlerFunc
	registrars     []RouteRegistrar
	protected      []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthMiddleware sets the middleware chain applied to protected registrars
func WithAuthMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authMiddleware = middleware
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

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

// RegisterProtected adds a RouteRegistrar behind the auth middleware
func (r *Router) RegisterProtected(registrar RouteRegistrar) *Router {
	r.protected = append(r.protected, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	if len(r.protected) > 0 {
		authed := api.Group("", r.authMiddleware...)
		for _, registrar := range r.protected {
			registrar.RegisterRoutes(authed)
		}
	}
}
