// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/sequence"
	"puntoventa/internal/domain/catalogs/customer"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/catalogs/supplier"
	"puntoventa/internal/domain/documents"
	"puntoventa/internal/domain/documents/invoice"
	"puntoventa/internal/domain/documents/purchase"
	"puntoventa/internal/domain/documents/remission"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/domain/reports"
	"puntoventa/internal/infrastructure/http/v1/handlers"
	"puntoventa/internal/infrastructure/http/v1/middleware"
	"puntoventa/internal/infrastructure/storage/postgres"
	"puntoventa/internal/infrastructure/storage/postgres/catalog_repo"
	"puntoventa/internal/infrastructure/storage/postgres/document_repo"
	"puntoventa/internal/infrastructure/storage/postgres/register_repo"
	"puntoventa/internal/infrastructure/storage/postgres/report_repo"
	"puntoventa/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager drives transactional units of work.
	TxManager *postgres.TxManager

	// Sequences mints document numbers.
	Sequences sequence.Generator

	// Logger for request logging.
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace(cfg.Logger))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Repositories
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	remissionRepo := document_repo.NewRemissionRepo(cfg.TxManager)
	movementRepo := register_repo.NewMovementRepo(cfg.TxManager)
	reminderRepo := register_repo.NewReminderRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	// Services
	ledgerSvc := ledger.NewService(movementRepo, productRepo)
	productSvc := product.NewService(productRepo, ledgerSvc, cfg.TxManager)
	supplierSvc := supplier.NewService(supplierRepo)
	customerSvc := customer.NewService(customerRepo)
	maintenanceSvc := maintenance.NewService(reminderRepo)
	reportSvc := reports.NewService(reportRepo)
	purchaseSvc := purchase.NewService(purchaseRepo, productRepo, supplierSvc, ledgerSvc, cfg.Sequences, cfg.TxManager)
	invoiceSvc := invoice.NewService(invoiceRepo, productRepo, customerSvc, ledgerSvc, maintenanceSvc, cfg.Sequences, cfg.TxManager)
	remissionSvc := remission.NewService(remissionRepo, productRepo, customerSvc, ledgerSvc, maintenanceSvc, cfg.Sequences, cfg.TxManager)
	deletionSvc := documents.NewDeletionService(productRepo, purchaseRepo, invoiceRepo, remissionRepo, movementRepo, cfg.TxManager)

	// Handlers
	base := handlers.NewBaseHandler()
	productHandler := handlers.NewProductHandler(base, productSvc, reportSvc, ledgerSvc, deletionSvc)
	supplierHandler := handlers.NewSupplierHandler(base, supplierSvc)
	customerHandler := handlers.NewCustomerHandler(base, customerSvc)
	purchaseHandler := handlers.NewPurchaseHandler(base, purchaseSvc)
	invoiceHandler := handlers.NewInvoiceHandler(base, invoiceSvc)
	remissionHandler := handlers.NewRemissionHandler(base, remissionSvc)
	inventoryHandler := handlers.NewInventoryHandler(base, productSvc)
	alertsHandler := handlers.NewAlertsHandler(base, productSvc, maintenanceSvc)

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/search", productHandler.Search)
			products.GET("/:id", productHandler.Get)
			products.GET("/:id/movements", productHandler.Movements)
			products.DELETE("/:id", productHandler.Delete)
		}

		v1.POST("/inventory/adjust", inventoryHandler.Adjust)

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
		}

		v1.GET("/customers", customerHandler.List)

		purchases := v1.Group("/purchases")
		{
			purchases.POST("", purchaseHandler.Create)
			purchases.GET("/history", purchaseHandler.List)
			purchases.GET("/:id", purchaseHandler.Get)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("/history", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.Get)
		}

		remissions := v1.Group("/remissions")
		{
			remissions.POST("", remissionHandler.Create)
			remissions.GET("/history", remissionHandler.List)
			remissions.GET("/:id", remissionHandler.Get)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("/low-stock", alertsHandler.LowStock)
			alerts.GET("/maintenance", alertsHandler.Maintenance)
			alerts.POST("/maintenance/:id/complete", alertsHandler.CompleteMaintenance)
		}
	}

	return router
}
