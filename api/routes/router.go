// Package routes wires controllers, middleware and access policies into the
// HTTP surface. Role policies live here so the full authorization matrix is
// readable in one place.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salesdeskhq/salesdesk-backend/api/controllers"
	"github.com/salesdeskhq/salesdesk-backend/api/middleware"
	"github.com/salesdeskhq/salesdesk-backend/pkg/config"
	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
	"github.com/salesdeskhq/salesdesk-backend/pkg/metrics"
	"github.com/salesdeskhq/salesdesk-backend/pkg/redis"
)

// Controllers groups every HTTP controller the router mounts.
type Controllers struct {
	Health     *controllers.HealthController
	Users      *controllers.UsersController
	Employees  *controllers.EmployeesController
	Customers  *controllers.CustomersController
	Products   *controllers.ProductsController
	Orders     *controllers.OrdersController
	Activities *controllers.ActivitiesController
}

// Dependencies carries everything the router needs beyond the controllers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	Registry    *prometheus.Registry
	RateLimiter *redis.Client
}

// New assembles the router.
func New(ctrl Controllers, deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORS)

	r.Get("/health/live", ctrl.Health.Live)
	r.Get("/health/ready", ctrl.Health.Ready)

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authed := middleware.Auth(deps.Config.JWT, deps.Logger)
	adminOnly := middleware.RequireRole(enums.RoleAdmin, deps.Logger)
	staffOnly := middleware.RequireAnyRole(deps.Logger, enums.RoleAdmin, enums.RoleEmployee)

	rl := deps.Config.AuthRateLimit
	loginLimiter := rateLimiter(
		middleware.NewAuthRateLimitPolicy("login", rl.LoginWindow, rl.LoginIPLimit, rl.LoginEmailLimit),
		deps)
	registerLimiter := rateLimiter(
		middleware.NewAuthRateLimitPolicy("register", rl.RegisterWindow, rl.RegisterIPLimit, rl.RegisterEmailLimit),
		deps)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.With(registerLimiter).Post("/register", ctrl.Users.Register)
			r.With(loginLimiter).Post("/login", ctrl.Users.Login)
			r.With(authed).Get("/me", ctrl.Users.Me)
		})

		r.Route("/employee", func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", ctrl.Employees.Create)
			r.Get("/", ctrl.Employees.List)
			r.Get("/{id}", ctrl.Employees.Get)
			r.Put("/{id}", ctrl.Employees.Update)
			r.Delete("/{id}", ctrl.Employees.Delete)
		})

		r.Route("/customer", func(r chi.Router) {
			r.Use(authed)
			r.With(adminOnly).Get("/", ctrl.Customers.List)
			r.With(staffOnly).Post("/", ctrl.Customers.Create)
			r.With(staffOnly).Get("/{id}", ctrl.Customers.Get)
			r.With(staffOnly).Put("/{id}", ctrl.Customers.Update)
			r.With(adminOnly).Delete("/{id}", ctrl.Customers.Delete)
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/", ctrl.Products.List)
			r.Get("/{id}", ctrl.Products.Get)
			r.With(authed, adminOnly).Post("/", ctrl.Products.Create)
			r.With(authed, adminOnly).Put("/{id}", ctrl.Products.Update)
			r.With(authed, adminOnly).Delete("/{id}", ctrl.Products.Delete)
		})

		r.Route("/order", func(r chi.Router) {
			r.Use(authed)
			r.With(adminOnly).Get("/", ctrl.Orders.List)
			r.With(staffOnly).Post("/", ctrl.Orders.Create)
			r.With(staffOnly).Get("/{id}", ctrl.Orders.Get)
			r.With(staffOnly).Put("/{id}", ctrl.Orders.Update)
			r.With(adminOnly).Delete("/{id}", ctrl.Orders.Delete)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Use(authed, staffOnly)
			r.Post("/", ctrl.Activities.Create)
			r.Get("/", ctrl.Activities.List)
			r.Get("/{id}", ctrl.Activities.Get)
			r.Put("/{id}", ctrl.Activities.Update)
			r.Delete("/{id}", ctrl.Activities.Delete)
		})
	})

	return r
}

// rateLimiter avoids handing the middleware a typed-nil store when Redis is
// not configured.
func rateLimiter(policy middleware.AuthRateLimitPolicy, deps Dependencies) func(http.Handler) http.Handler {
	if deps.RateLimiter == nil {
		return middleware.AuthRateLimit(policy, nil, deps.Logger)
	}
	return middleware.AuthRateLimit(policy, deps.RateLimiter, deps.Logger)
}
