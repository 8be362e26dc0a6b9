package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/auth"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/lifecycle"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC     *usecase.StoreUseCase
	UserUC      *usecase.UserUseCase
	MerchUC     *usecase.MerchandiseUseCase
	RecordSale  *sales.RecordSaleUseCase
	SaleQuery   *sales.QueryUseCase
	LifecycleUC *lifecycle.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stores (protegido; escritura solo ADMIN)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC, deps.LifecycleUC)
	stores.Post("/", RequireRole(entity.RoleAdmin), storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", RequireRole(entity.RoleAdmin), storeHandler.Update)
	stores.Delete("/:id", RequireRole(entity.RoleAdmin), storeHandler.Delete)
	stores.Post("/:id/restore", RequireRole(entity.RoleAdmin), storeHandler.Restore)

	// Users (protegido; el alcance fino lo decide el caso de uso)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleManager))
	userHandler := NewUserHandler(deps.UserUC, deps.LifecycleUC)
	users.Post("/", userHandler.Create)
	users.Get("/sellers", userHandler.ListSellers)
	users.Get("/managers", RequireRole(entity.RoleAdmin), userHandler.ListManagers)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/restore", RequireRole(entity.RoleAdmin), userHandler.Restore)

	// Merchandise (protegido; escritura MANAGER/ADMIN)
	merch := protected.Group("/merchandise")
	merchHandler := NewMerchandiseHandler(deps.MerchUC, deps.LifecycleUC)
	merch.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), merchHandler.Create)
	merch.Get("/", merchHandler.ListByStore)
	merch.Get("/:id", merchHandler.GetByID)
	merch.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), merchHandler.Update)
	merch.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), merchHandler.Delete)
	merch.Post("/:id/restore", RequireRole(entity.RoleAdmin), merchHandler.Restore)

	// Sales (protegido; registrar exige un rol con tienda)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSale, deps.SaleQuery, deps.LifecycleUC)
	salesGroup.Post("/", RequireRole(entity.RoleSeller, entity.RoleManager), saleHandler.Record)
	salesGroup.Post("/guided", RequireRole(entity.RoleSeller, entity.RoleManager), saleHandler.RecordGuided)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", RequireRole(entity.RoleAdmin), saleHandler.Delete)
	salesGroup.Post("/:id/restore", RequireRole(entity.RoleAdmin), saleHandler.Restore)

	// Reports (protegido; el scope por rol lo aplica el caso de uso)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SaleQuery)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/by-day", reportHandler.ByDay)
	reports.Get("/by-seller", reportHandler.BySeller)
	reports.Get("/by-payment-method", reportHandler.ByPaymentMethod)
}
