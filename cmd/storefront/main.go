package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vurel/storefront/internal/api/handlers"
	"github.com/vurel/storefront/internal/api/middleware"
	"github.com/vurel/storefront/internal/cache"
	"github.com/vurel/storefront/internal/config"
	"github.com/vurel/storefront/internal/health"
	"github.com/vurel/storefront/internal/metrics"
	repository "github.com/vurel/storefront/internal/repositories"
	service "github.com/vurel/storefront/internal/services"
	"github.com/vurel/storefront/pkg/razorpay"
	"github.com/vurel/storefront/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
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
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	cartStore := repository.NewCartStore(redisClient)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	settingsCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	gateway := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	settingsService := service.NewSettingsService(repos.Settings, settingsCache)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	couponService := service.NewCouponService(repos.Coupon)
	couponHandler := handlers.NewCouponHandler(couponService)
	cartService := service.NewCartService(cartStore, couponService, settingsService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentService := service.NewPaymentService(gateway, cartStore, cfg.Razorpay.Currency)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	checkoutService := service.NewCheckoutService(cartStore, repos.Order, userService, couponService, settingsService, gateway, emailService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	reviewService := service.NewReviewService(repos.Review)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
		Gateway:     gateway,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	admin := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireAdmin(next))
	}

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/auth/me", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("GET /api/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("GET /api/carts/{id}/totals", cartHandler.Totals())
	routerMux.HandleFunc("POST /api/carts/{id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/carts/{id}/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/carts/{id}/items/{productId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/carts/{id}/coupon", cartHandler.ApplyCoupon())
	routerMux.HandleFunc("DELETE /api/carts/{id}/coupon", cartHandler.RemoveCoupon())

	routerMux.HandleFunc("POST /api/coupons/validate", couponHandler.Validate())
	routerMux.HandleFunc("GET /api/settings/shipping", settingsHandler.GetShipping())

	routerMux.HandleFunc("POST /api/payment/create-order", paymentHandler.CreateOrder())
	routerMux.HandleFunc("POST /api/payment/verify", paymentHandler.Verify())

	routerMux.HandleFunc("POST /api/orders", authMiddleware.OptionalAuthenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/user/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/user/orders/{id}", authMiddleware.OptionalAuthenticate(orderHandler.GetOrder()))

	routerMux.HandleFunc("GET /api/products/{productId}/reviews", reviewHandler.List())
	routerMux.HandleFunc("POST /api/products/{productId}/reviews", authMiddleware.OptionalAuthenticate(reviewHandler.Create()))

	routerMux.HandleFunc("GET /api/admin/coupons", admin(couponHandler.List()))
	routerMux.HandleFunc("POST /api/admin/coupons", admin(couponHandler.Create()))
	routerMux.HandleFunc("PUT /api/admin/coupons/{id}", admin(couponHandler.Update()))
	routerMux.HandleFunc("DELETE /api/admin/coupons/{id}", admin(couponHandler.Delete()))
	routerMux.HandleFunc("PUT /api/admin/settings/shipping", admin(settingsHandler.UpdateShipping()))
	routerMux.HandleFunc("PATCH /api/admin/orders/{id}/status", admin(orderHandler.UpdateStatus()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}
}
