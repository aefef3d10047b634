package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/salesdeskhq/salesdesk-backend/api/controllers"
	"github.com/salesdeskhq/salesdesk-backend/api/routes"
	"github.com/salesdeskhq/salesdesk-backend/internal/activities"
	"github.com/salesdeskhq/salesdesk-backend/internal/customers"
	"github.com/salesdeskhq/salesdesk-backend/internal/employees"
	"github.com/salesdeskhq/salesdesk-backend/internal/identity"
	"github.com/salesdeskhq/salesdesk-backend/internal/orders"
	"github.com/salesdeskhq/salesdesk-backend/internal/products"
	"github.com/salesdeskhq/salesdesk-backend/pkg/config"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
	"github.com/salesdeskhq/salesdesk-backend/pkg/metrics"
	"github.com/salesdeskhq/salesdesk-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "salesdesk-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database connection failed", err)
		os.Exit(1)
	}
	defer client.Close()

	var limiter *redis.Client
	if cfg.Redis.URL != "" {
		limiter, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "redis connection failed, auth rate limiting disabled", err)
			limiter = nil
		} else {
			defer limiter.Close()
		}
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	limits := listing.Limits{
		Default: cfg.Query.DefaultLimit,
		Max:     cfg.Query.MaxLimit,
	}

	employeeSvc := employees.NewService(employees.NewRepository(client), limits)
	customerSvc := customers.NewService(customers.NewRepository(client), limits)
	productSvc := products.NewService(products.NewRepository(client), limits)
	orderSvc := orders.NewService(orders.NewRepository(client), limits)
	activitySvc := activities.NewService(activities.NewRepository(client), limits)
	identitySvc := identity.NewService(identity.NewRepository(client), cfg.JWT, cfg.Password)

	router := routes.New(routes.Controllers{
		Health:     controllers.NewHealthController(client, logg),
		Users:      controllers.NewUsersController(identitySvc, logg),
		Employees:  controllers.NewEmployeesController(employeeSvc, logg),
		Customers:  controllers.NewCustomersController(customerSvc, logg),
		Products:   controllers.NewProductsController(productSvc, logg),
		Orders:     controllers.NewOrdersController(orderSvc, logg),
		Activities: controllers.NewActivitiesController(activitySvc, logg),
	}, routes.Dependencies{
		Config:      cfg,
		Logger:      logg,
		Metrics:     httpMetrics,
		Registry:    registry,
		RateLimiter: limiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logg.Info(ctx, "http server listening on :"+cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "http server failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
}
