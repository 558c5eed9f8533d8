package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicash/pricing-service/internal/config"
	"github.com/clinicash/pricing-service/internal/database"
	"github.com/clinicash/pricing-service/internal/handler"
	"github.com/clinicash/pricing-service/internal/middleware"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/repository"
	"github.com/clinicash/pricing-service/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	setupAPIRoutes(router, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool) {
	engine := pricing.NewEngine()

	rateRepo := repository.NewRateConfigRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	receivableRepo := repository.NewReceivableRepository(pool)

	quoteService := service.NewQuoteService(engine, rateRepo)
	saleService := service.NewSaleService(quoteService, saleRepo)
	rateConfigService := service.NewRateConfigService(rateRepo)
	receivableService := service.NewReceivableService(receivableRepo)

	quoteHandler := handler.NewQuoteHandler(quoteService)
	saleHandler := handler.NewSaleHandler(saleService)
	rateConfigHandler := handler.NewRateConfigHandler(rateConfigService)
	receivableHandler := handler.NewReceivableHandler(receivableService)

	api := router.Group("/api/v1")
	{
		api.PUT("/merchants/:merchantID/rate-config", rateConfigHandler.Upsert)
		api.GET("/merchants/:merchantID/rate-config", rateConfigHandler.Get)
		api.POST("/quotes", quoteHandler.Create)
		api.POST("/sales", saleHandler.Create)
		api.GET("/receivables", receivableHandler.List)
	}
}
