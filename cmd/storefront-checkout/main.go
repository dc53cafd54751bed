package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront-checkout/docs"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/events"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/health"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/memory"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront Checkout API
//	@version					1.0
//	@description				Cart, coupon, checkout and order lifecycle service with Stripe reconciliation.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := openRepositories(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg)
	couponCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.Host, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	publisher := events.NewPublisher(cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	recorder := metrics.NewRecorder()
	pricing := service.NewFlatRatePolicy(cfg.Checkout)

	// Services
	notificationService := service.NewNotificationService(repos.User, emailService)
	cartService := service.NewCartService(repos.Cart, repos.Product, cfg.Checkout)
	couponService := service.NewCouponService(repos.Coupon, repos.Cart, couponCache, cfg, nil)
	checkoutService := service.NewCheckoutService(repos, pricing, notificationService, publisher, recorder)
	orderService := service.NewOrderService(repos.Order, repos.User, publisher)
	paymentService := service.NewPaymentService(repos, stripeClient, checkoutService, pricing, cfg.Stripe.Currency, recorder)

	// Handlers
	cartHandler := handlers.NewCartHandler(cartService, couponService)
	orderHandler := handlers.NewOrderHandler(orderService, checkoutService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	paymentStatusHandler := handlers.NewPaymentStatusHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Stripe: stripeClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.String("version", "1.0.0"))

	// Setup router
	auth := authMiddleware.Authenticate
	withRoles := func(next http.HandlerFunc, roles ...models.Role) http.HandlerFunc {
		return auth(middleware.RequireRoles(next, roles...))
	}

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/cart", auth(cartHandler.AddItem()))
	routerMux.HandleFunc("GET /api/v1/cart", auth(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", auth(cartHandler.ClearCart()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{itemId}", auth(cartHandler.UpdateItemQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{itemId}", auth(cartHandler.RemoveItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/coupon", auth(middleware.RateLimit(rateLimiter, "coupon", cartHandler.ApplyCoupon())))
	routerMux.HandleFunc("GET /api/v1/payment-status", middleware.RateLimit(rateLimiter, "payment-status", paymentStatusHandler.HasPaid()))
	routerMux.HandleFunc("GET /api/v1/payment-status/products/{productId}",
		middleware.RateLimit(rateLimiter, "payment-status", paymentStatusHandler.HasPaidForProduct()))
	routerMux.HandleFunc("POST /api/v1/orders/{cartId}", auth(orderHandler.CreateCashOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", auth(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", auth(orderHandler.GetOrder()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/status", withRoles(orderHandler.UpdateOrderStatus(), models.RoleAdmin, models.RoleManager))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/pay", auth(orderHandler.MarkPaid()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", withRoles(orderHandler.DeleteOrder(), models.RoleAdmin))
	routerMux.HandleFunc("POST /api/v1/payments/intents/{cartId}", auth(paymentHandler.CreatePaymentIntent()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining, metrics innermost so the matched pattern is known
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// openRepositories backs the repositories with Postgres, or with the
// in-process store seeded from config when the memory driver is configured.
func openRepositories(cfg *config.Config) (*repository.Repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		slog.Warn("Using the in-memory store, data is lost on restart")

		store := memory.NewStore()
		if err := store.Seed(cfg.Seed, time.Now()); err != nil {
			return nil, err
		}

		slog.Info("In-memory store seeded",
			slog.Int("products", len(cfg.Seed.Products)),
			slog.Int("coupons", len(cfg.Seed.Coupons)),
			slog.Int("users", len(cfg.Seed.Users)))

		return store.Repositories(), nil
	}

	return repository.New(cfg)
}
