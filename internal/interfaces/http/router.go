package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngandu/barresto-api/internal/application/auth"
	"github.com/ngandu/barresto-api/internal/application/catalog"
	"github.com/ngandu/barresto-api/internal/application/client"
	"github.com/ngandu/barresto-api/internal/application/purchase"
	"github.com/ngandu/barresto-api/internal/application/sale"
	"github.com/ngandu/barresto-api/internal/application/stock"
	"github.com/ngandu/barresto-api/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.UseCase
	PurchaseUC *purchase.UseCase
	SaleUC     *sale.UseCase
	StockUC    *stock.LedgerUseCase
	ClientUC   *client.UseCase
	JWTSecret  string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalogue
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/prices", productHandler.SetPrice)
	products.Get("/:id/prices", productHandler.ListPrices)

	// Achats groupés (gérant et magasinier; suppression réservée au gérant)
	investments := protected.Group("/investments", RequireRole(entity.RoleGerant, entity.RoleMagasinier))
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	investments.Post("/", purchaseHandler.Create)
	investments.Get("/", purchaseHandler.List)
	investments.Get("/:id", purchaseHandler.GetByID)
	investments.Put("/:id", purchaseHandler.Update)
	investments.Delete("/:id", RequireRole(entity.RoleGerant), purchaseHandler.Delete)

	// Ventes (gérant et caissier)
	sales := protected.Group("/sales", RequireRole(entity.RoleGerant, entity.RoleCaissier))
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Post("/:id/finalize", saleHandler.Finalize)
	sales.Post("/:id/cancel", saleHandler.Cancel)

	// Stock et journal des mouvements. /movements avant /:product_id pour la
	// priorité de route.
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", RequireRole(entity.RoleGerant, entity.RoleMagasinier), stockHandler.RecordMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/:product_id", stockHandler.GetQuantity)

	// Clients fidélité
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/balance", clientHandler.Balance)
}
