// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/customer"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/catalogs/supplier"
	"puntoventa/internal/domain/documents/invoice"
	"puntoventa/internal/domain/documents/purchase"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/infrastructure/storage/postgres"
	"puntoventa/internal/infrastructure/storage/postgres/catalog_repo"
	"puntoventa/internal/infrastructure/storage/postgres/document_repo"
	"puntoventa/internal/infrastructure/storage/postgres/register_repo"
	"puntoventa/pkg/logger"
)

type demoProduct struct {
	name      string
	sku       string
	price     string
	threshold int64
	stock     int64
}

var demoProducts = []demoProduct{
	{"Aceite 20W-50 cuarto", "ACE-2050", "28000", 10, 24},
	{"Filtro de aceite", "FIL-001", "15000", 8, 18},
	{"Bujia NGK", "BUJ-NGK", "12000", 12, 30},
	{"Llanta 90/90-18", "LLA-9090", "160000", 2, 6},
	{"Pastillas de freno", "FRE-PAS", "35000", 6, 12},
}

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	sequences := postgres.NewSequenceGenerator(pool)

	productRepo := catalog_repo.NewProductRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)
	movementRepo := register_repo.NewMovementRepo(txManager)
	reminderRepo := register_repo.NewReminderRepo(txManager)

	ledgerSvc := ledger.NewService(movementRepo, productRepo)
	productSvc := product.NewService(productRepo, ledgerSvc, txManager)
	supplierSvc := supplier.NewService(supplierRepo)
	customerSvc := customer.NewService(customerRepo)
	maintenanceSvc := maintenance.NewService(reminderRepo)
	purchaseSvc := purchase.NewService(purchaseRepo, productRepo, supplierSvc, ledgerSvc, sequences, txManager)
	invoiceSvc := invoice.NewService(invoiceRepo, productRepo, customerSvc, ledgerSvc, maintenanceSvc, sequences, txManager)

	created := 0
	for _, d := range demoProducts {
		p := product.New(d.name, d.sku)
		p.Price = types.MustMoney(d.price)
		p.LowStockThreshold = d.threshold

		if err := productSvc.Create(ctx, p, d.stock); err != nil {
			if apperror.IsDuplicate(err) {
				log.Infow("product already seeded", "sku", d.sku)
				continue
			}
			log.Fatalw("failed to seed product", "sku", d.sku, "error", err)
		}
		created++
	}
	log.Infow("products seeded", "created", created, "skipped", len(demoProducts)-created)

	if os.Getenv("SEED_DEMO_DOCUMENTS") != "true" {
		log.Info("seed complete (set SEED_DEMO_DOCUMENTS=true to add documents)")
		return
	}

	if err := seedDemoDocuments(ctx, productRepo, purchaseSvc, invoiceSvc); err != nil {
		log.Fatalw("failed to seed demo documents", "error", err)
	}
	log.Info("seed complete")
}

// seedDemoDocuments records one purchase and one invoice so history
// and stats endpoints have something to show.
func seedDemoDocuments(
	ctx context.Context,
	products product.Repository,
	purchaseSvc *purchase.Service,
	invoiceSvc *invoice.Service,
) error {
	oil, err := products.GetBySKU(ctx, "ACE-2050")
	if err != nil {
		return err
	}
	filter, err := products.GetBySKU(ctx, "FIL-001")
	if err != nil {
		return err
	}

	_, err = purchaseSvc.Create(ctx, purchase.CreateInput{
		Supplier: supplier.Input{Name: "Distribuidora El Motor", Phone: "3001234567"},
		Items: []purchase.LineInput{
			{ProductID: oil.ID, Quantity: 12, UnitCost: types.MustMoney("21000")},
			{ProductID: filter.ID, Quantity: 10, UnitCost: types.MustMoney("11000")},
		},
		Notes: "Pedido inicial de demostracion",
	})
	if err != nil {
		return fmt.Errorf("seed purchase: %w", err)
	}

	_, err = invoiceSvc.Create(ctx, invoice.CreateInput{
		Customer: customer.Input{
			Name:           "Carlos Ramirez",
			DocumentNumber: "1020304050",
			Phone:          "3109876543",
		},
		Items: []invoice.LineInput{
			{ProductID: oil.ID, Quantity: 1, UnitPrice: oil.Price},
			{ProductID: filter.ID, Quantity: 1, UnitPrice: filter.Price},
		},
		Notes:           "Cambio de aceite",
		MaintenanceDays: 90,
	})
	if err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}

	return nil
}
