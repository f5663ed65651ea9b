package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	expenseapp "github.com/bookkeeping/backend/internal/application/expense"
	masterdataapp "github.com/bookkeeping/backend/internal/application/masterdata"
	"github.com/bookkeeping/backend/internal/application/reconcile"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/logger"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence"
	"github.com/bookkeeping/backend/internal/interfaces/http/handler"
	"github.com/bookkeeping/backend/internal/interfaces/http/middleware"
	"github.com/bookkeeping/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Bookkeeping Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	accountNameRepo := persistence.NewGormAccountNameRepository(db.DB)
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	paymentTypeRepo := persistence.NewGormPaymentTypeRepository(db.DB)
	budgetItemRepo := persistence.NewGormBudgetItemRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	reconciler := reconcile.NewReconciler(txScope, log)
	batchService := reconcile.NewBatchService(reconciler, supplierRepo, accountNameRepo, log)
	expenseService := expenseapp.NewService(expenseRepo, paymentRepo)
	masterDataService := masterdataapp.NewService(regionRepo, paymentTypeRepo, budgetItemRepo)

	// Initialize handlers
	reconcileHandler := handler.NewReconcileHandler(batchService, cfg.Import.MaxBatchRecords)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService)
	supplierHandler := handler.NewSupplierHandler(supplierRepo, accountNameRepo)
	systemHandler := handler.NewSystemHandler(db)

	// Set gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Import reconciliation
	importRoutes := router.NewDomainGroup("imports", "/imports")
	importRoutes.POST("/invoices/reconcile", reconcileHandler.ReconcileBatch)

	// Ledger reads
	expenseRoutes := router.NewDomainGroup("expenses", "/expenses")
	expenseRoutes.GET("", expenseHandler.List)
	expenseRoutes.GET("/:id", expenseHandler.Get)

	// Reference entities created by the import resolver
	partnerRoutes := router.NewDomainGroup("partners", "")
	partnerRoutes.GET("/suppliers", supplierHandler.ListSuppliers)
	partnerRoutes.POST("/suppliers", supplierHandler.CreateSupplier)
	partnerRoutes.GET("/account-names", supplierHandler.ListAccountNames)
	partnerRoutes.POST("/account-names", supplierHandler.CreateAccountName)

	// Master data referenced by expenses
	masterDataRoutes := router.NewDomainGroup("masterdata", "")
	masterDataRoutes.GET("/regions", masterDataHandler.ListRegions)
	masterDataRoutes.POST("/regions", masterDataHandler.CreateRegion)
	masterDataRoutes.PUT("/regions/:id", masterDataHandler.RenameRegion)
	masterDataRoutes.DELETE("/regions/:id", masterDataHandler.DeleteRegion)
	masterDataRoutes.GET("/payment-types", masterDataHandler.ListPaymentTypes)
	masterDataRoutes.POST("/payment-types", masterDataHandler.CreatePaymentType)
	masterDataRoutes.PUT("/payment-types/:id", masterDataHandler.RenamePaymentType)
	masterDataRoutes.DELETE("/payment-types/:id", masterDataHandler.DeletePaymentType)
	masterDataRoutes.GET("/budget-items", masterDataHandler.ListBudgetItems)
	masterDataRoutes.POST("/budget-items", masterDataHandler.CreateBudgetItem)
	masterDataRoutes.PUT("/budget-items/:id", masterDataHandler.RenameBudgetItem)
	masterDataRoutes.DELETE("/budget-items/:id", masterDataHandler.DeleteBudgetItem)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(importRoutes).
		Register(expenseRoutes).
		Register(partnerRoutes).
		Register(masterDataRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
