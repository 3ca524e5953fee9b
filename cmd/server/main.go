package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	partnerapp "github.com/distribev/backend/internal/application/partner"
	salesapp "github.com/distribev/backend/internal/application/sales"
	"github.com/distribev/backend/internal/infrastructure/config"
	"github.com/distribev/backend/internal/infrastructure/logger"
	"github.com/distribev/backend/internal/infrastructure/persistence"
	"github.com/distribev/backend/internal/interfaces/http/handler"
	"github.com/distribev/backend/internal/interfaces/http/middleware"
	"github.com/distribev/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Distribev Ledger API
//	@version		1.0
//	@description	Sales ledger backend with derived production and transport records and running customer balances

//	@host		localhost:8080
//	@BasePath	/api/v1

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Distribev Ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	productionRepo := persistence.NewGormProductionEntryRepository(db.DB)
	transportRepo := persistence.NewGormTransportEntryRepository(db.DB)
	quoteRepo := persistence.NewGormPricingQuoteRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	// Services
	pricingResolver := salesapp.NewPricingResolver(quoteRepo)
	salesService := salesapp.NewService(entryRepo, productionRepo, transportRepo, customerRepo, pricingResolver, log)
	quoteService := salesapp.NewQuoteService(quoteRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)

	// Handlers
	transactionHandler := handler.NewTransactionHandler(salesService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	customerHandler := handler.NewCustomerHandler(customerService)
	systemHandler := handler.NewSystemHandler(db.Ping)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(transactionHandler)
	r.Register(quoteHandler)
	r.Register(customerHandler)
	r.Register(systemHandler)
	r.Setup()

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
