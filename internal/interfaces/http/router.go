package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistemas-transaccionales-umb/back/internal/application/auth"
	"github.com/sistemas-transaccionales-umb/back/internal/application/inventory"
	"github.com/sistemas-transaccionales-umb/back/internal/application/purchasing"
	"github.com/sistemas-transaccionales-umb/back/internal/application/sales"
	"github.com/sistemas-transaccionales-umb/back/internal/application/transfers"
	"github.com/sistemas-transaccionales-umb/back/internal/application/usecase"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	CategoryUC  *usecase.CategoryUseCase
	InventoryUC *inventory.UseCase
	PurchaseUC  *purchasing.UseCase
	SaleUC      *sales.UseCase
	TransferUC  *transfers.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles que mueven inventario físico y roles que venden
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Update)

	// Terceros
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/levels", warehouseRoles, inventoryHandler.CreateLevel)
	invGroup.Post("/adjustments", warehouseRoles, inventoryHandler.Adjust)
	invGroup.Get("/alerts", inventoryHandler.ListBelowThreshold)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/levels/:warehouse_id", inventoryHandler.ListByWarehouse)
	invGroup.Get("/levels/:warehouse_id/:product_id", inventoryHandler.GetLevel)

	// Compras
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", warehouseRoles, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", warehouseRoles, purchaseHandler.Receive)
	purchases.Post("/:id/cancel", warehouseRoles, purchaseHandler.Cancel)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", salesRoles, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/payment-status", salesRoles, saleHandler.UpdatePaymentStatus)

	// Traslados
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfersGroup.Post("/", warehouseRoles, transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Post("/:id/process", warehouseRoles, transferHandler.Process)
	transfersGroup.Post("/:id/receive", warehouseRoles, transferHandler.Receive)
}
