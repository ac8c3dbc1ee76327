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
	"github.com/sistemas-transaccionales-umb/back/internal/application/auth"
	"github.com/sistemas-transaccionales-umb/back/internal/application/inventory"
	"github.com/sistemas-transaccionales-umb/back/internal/application/purchasing"
	"github.com/sistemas-transaccionales-umb/back/internal/application/sales"
	"github.com/sistemas-transaccionales-umb/back/internal/application/transfers"
	"github.com/sistemas-transaccionales-umb/back/internal/application/usecase"
	"github.com/sistemas-transaccionales-umb/back/internal/infrastructure/migration"
	"github.com/sistemas-transaccionales-umb/back/internal/infrastructure/postgres"
	httpRouter "github.com/sistemas-transaccionales-umb/back/internal/interfaces/http"
	"github.com/sistemas-transaccionales-umb/back/pkg/config"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.App.MigrationsPath != "" {
		migrator, err := migration.New(cfg.DB.ConnectionString(), cfg.App.MigrationsPath, log)
		if err != nil {
			log.Fatal().Err(err).Msg("crear migrator")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	inventoryUC := inventory.NewUseCase(txRunner, stockRepo, movRepo, productRepo, warehouseRepo, log)
	purchaseUC := purchasing.NewUseCase(txRunner, purchaseRepo, supplierRepo, userRepo, productRepo, warehouseRepo, log)
	saleUC := sales.NewUseCase(txRunner, saleRepo, customerRepo, userRepo, productRepo, warehouseRepo, cfg.Sales.DefaultWarehouseID, log)
	transferUC := transfers.NewUseCase(txRunner, transferRepo, stockRepo, warehouseRepo, userRepo, productRepo, log)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		SupplierUC:  supplierUC,
		CustomerUC:  customerUC,
		CategoryUC:  categoryUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		TransferUC:  transferUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
