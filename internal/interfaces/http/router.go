package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-stock/internal/application/auth"
	"github.com/tu-usuario/almacen-stock/internal/application/report"
	"github.com/tu-usuario/almacen-stock/internal/application/stock"
	"github.com/tu-usuario/almacen-stock/internal/application/usecase"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	ItemUC          *usecase.ItemUseCase
	UserUC          *usecase.UserUseCase
	Movements       *stock.UseCase
	LedgerView      *stock.LedgerView
	ReportUC        *report.UseCase
	JWTSecret       string
	LoginRatePerMin int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth. Login es público con rate limit por IP; el registro de usuarios
	// queda reservado al superadmin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginRateLimit(deps.LoginRatePerMin), authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleSuperadmin),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleSuperadmin, entity.RoleAdmin)
	superadminOnly := RequireRole(entity.RoleSuperadmin)

	// Catálogo de artículos. Consultar puede cualquier usuario autenticado;
	// altas, ediciones y bajas son de admin hacia arriba.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/export", itemHandler.ExportCSV)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Put("/:id", adminOnly, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)

	// Movimientos de stock y actividad reciente: cualquier usuario autenticado,
	// el operario de la estantería incluido.
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Movements, deps.LedgerView, deps.ReportUC)
	stockGroup.Post("/movements", stockHandler.RecordMovement)
	stockGroup.Get("/items/:id", stockHandler.Resolve)
	stockGroup.Get("/log", stockHandler.RecentActivity)
	stockGroup.Get("/report", adminOnly, stockHandler.StockReport)

	// Administración de usuarios (solo superadmin)
	users := protected.Group("/users", superadminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
