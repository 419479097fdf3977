package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/importer"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/report"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	InventoryUC   *inventory.InventoryUseCase
	TransactionUC *inventory.TransactionUseCase
	ReportUC      *report.ReportUseCase
	AuthUC        *auth.AuthUseCase
	ImportUC      *importer.UseCase
	ImportSources ImportSources
	JWTSecret     string
}

// Router registra las rutas de la API. Las rutas estáticas van antes que las de parámetros.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con rol USER o ADMIN)
	anyRole := RequireRole(auth.RoleUser, auth.RoleAdmin)
	adminOnly := RequireRole(auth.RoleAdmin)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	// Products
	products := protected.Group("/v1/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/search", warehouseHandler.Search)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/summary", warehouseHandler.Summary)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Inventory
	inv := protected.Group("/v1/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/below-minimum", inventoryHandler.BelowMinimum)
	inv.Get("/above-maximum", inventoryHandler.AboveMaximum)
	inv.Get("/replenishment", inventoryHandler.Replenishment)
	inv.Get("/warehouse/:warehouseId", inventoryHandler.ByWarehouse)
	inv.Get("/product/:productId", inventoryHandler.ByProduct)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id/levels", inventoryHandler.UpdateLevels)
	inv.Delete("/:id", adminOnly, inventoryHandler.Delete)
	inv.Put("/:productId/:warehouseId", inventoryHandler.SetQuantity)
	inv.Post("/:productId/:warehouseId/adjust", inventoryHandler.Adjust)
	inv.Get("/:productId/:warehouseId/quantity", inventoryHandler.Quantity)

	// Transactions
	txs := protected.Group("/v1/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	txs.Get("/", transactionHandler.List)
	txs.Post("/", transactionHandler.Create)
	txs.Get("/period", transactionHandler.ByPeriod)
	txs.Get("/product/:productId", transactionHandler.ByProduct)
	txs.Get("/warehouse/:warehouseId", transactionHandler.ByWarehouse)
	txs.Get("/:id", transactionHandler.GetByID)

	// Reports
	reports := protected.Group("/v1/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.Overall)
	reports.Get("/inventory/:warehouseId", reportHandler.Inventory)
	reports.Get("/transactions", reportHandler.Transactions)
	reports.Get("/summary", reportHandler.Summary)

	// Import (ADMIN)
	if deps.ImportUC != nil {
		imports := protected.Group("/v1/import", adminOnly)
		importHandler := NewImportHandler(deps.ImportUC, deps.ImportSources)
		imports.Post("/postgresql", importHandler.Database)
		imports.Post("/file", importHandler.File)
	}
}
