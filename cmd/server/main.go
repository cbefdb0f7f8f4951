package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/raamdecor/storefront/internal/application/cart"
	catalogapp "github.com/raamdecor/storefront/internal/application/catalog"
	checkoutapp "github.com/raamdecor/storefront/internal/application/checkout"
	pricingapp "github.com/raamdecor/storefront/internal/application/pricing"
	"github.com/raamdecor/storefront/internal/domain/cart"
	"github.com/raamdecor/storefront/internal/domain/shared"
	"github.com/raamdecor/storefront/internal/infrastructure/cache"
	"github.com/raamdecor/storefront/internal/infrastructure/cartstore"
	"github.com/raamdecor/storefront/internal/infrastructure/catalogdata"
	"github.com/raamdecor/storefront/internal/infrastructure/config"
	"github.com/raamdecor/storefront/internal/infrastructure/ecommerce"
	"github.com/raamdecor/storefront/internal/infrastructure/logger"
	"github.com/raamdecor/storefront/internal/infrastructure/persistence"
	"github.com/raamdecor/storefront/internal/infrastructure/pricingdata"
	"github.com/raamdecor/storefront/internal/interfaces/http/handler"
	"github.com/raamdecor/storefront/internal/interfaces/http/middleware"
	"github.com/raamdecor/storefront/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Static data: product catalog and pricing matrices
	catalogStore, err := catalogdata.NewFileStore(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load product catalog", zap.Error(err))
	}
	matrixLoader, err := pricingdata.NewLoader(cfg.Pricing.Dir)
	if err != nil {
		log.Fatal("Failed to open pricing matrix directory", zap.Error(err))
	}

	// Cart snapshot store
	cartStore, cleanup, err := buildCartStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize cart store", zap.Error(err))
	}
	defer cleanup()
	log.Info("Cart store ready",
		zap.String("backend", cfg.Cart.Store),
		zap.Duration("retention", cfg.Cart.Retention),
	)

	// Checkout token store guards against duplicate submissions
	tokenStore, err := buildTokenStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize checkout token store", zap.Error(err))
	}
	defer func() {
		_ = tokenStore.Close()
	}()

	// Order platform gateway
	gateway, err := ecommerce.NewShopifyAdapter(&ecommerce.ShopifyConfig{
		StoreDomain:    cfg.Shopify.StoreDomain,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize order gateway", zap.Error(err))
	}

	// Application services
	quoteService := pricingapp.NewQuoteService(catalogStore, matrixLoader)
	productService := catalogapp.NewProductService(catalogStore)
	cartService := cartapp.NewService(cartStore, catalogStore, matrixLoader, log)
	checkoutService := checkoutapp.NewService(cartStore, gateway, tokenStore, checkoutapp.Config{
		MaxRetries: cfg.Checkout.MaxRetries,
		TokenTTL:   cfg.Checkout.TokenTTL,
	}, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", handler.NewSystemHandler(version).Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewPricingHandler(quoteService)).
		Register(handler.NewCatalogHandler(productService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildCartStore selects the cart snapshot backend from configuration. The
// returned cleanup closes whatever connection the backend holds.
func buildCartStore(cfg *config.Config, log *zap.Logger) (cart.Store, func(), error) {
	switch cfg.Cart.Store {
	case "redis":
		store, err := cartstore.NewRedisStore(
			cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB,
			cfg.Cart.Retention, log,
		)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "database":
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
		if err != nil {
			return nil, nil, err
		}
		store, err := cartstore.NewGormStore(db.DB, cfg.Cart.Retention, log)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	default:
		store := cartstore.NewMemoryStore(cfg.Cart.Retention, log)
		return store, func() {}, nil
	}
}

// buildTokenStore pairs the token backend with the cart backend: a Redis cart
// store gets Redis-backed tokens so the duplicate-submission guard survives
// restarts and is shared across instances.
func buildTokenStore(cfg *config.Config) (shared.TokenStore, error) {
	if cfg.Cart.Store == "redis" {
		return cache.NewRedisTokenStore(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	}
	return cache.NewInMemoryTokenStore(), nil
}
