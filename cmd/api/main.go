package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ngandu/barresto-api/internal/application/auth"
	"github.com/ngandu/barresto-api/internal/application/catalog"
	"github.com/ngandu/barresto-api/internal/application/client"
	"github.com/ngandu/barresto-api/internal/application/purchase"
	"github.com/ngandu/barresto-api/internal/application/sale"
	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/infrastructure/cache"
	"github.com/ngandu/barresto-api/internal/infrastructure/postgres"
	httpRouter "github.com/ngandu/barresto-api/internal/interfaces/http"
	"github.com/ngandu/barresto-api/pkg/config"
	"github.com/ngandu/barresto-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion PostgreSQL")
	}
	defer pool.Close()

	// Cache Redis pour les lectures de prix, Noop si REDIS_ADDR est vide.
	var priceCache cache.PriceCache = cache.NoopPriceCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisPriceCache(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis injoignable, cache désactivé")
		} else {
			priceCache = redisCache
			defer redisCache.Close()
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	invRepo := postgres.NewInvestmentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	loyaltyRepo := postgres.NewLoyaltyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(productRepo, priceRepo, priceCache)
	stockUC := stock.NewLedgerUseCase(txRunner, productRepo, stockRepo, movRepo)
	purchaseUC := purchase.NewUseCase(txRunner, invRepo, movRepo)
	saleUC := sale.NewUseCase(txRunner, saleRepo, productRepo, cfg.Loyalty.Divisor)
	clientUC := client.NewUseCase(clientRepo, loyaltyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BarResto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		StockUC:    stockUC,
		ClientUC:   clientUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
