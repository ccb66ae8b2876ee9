package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/auth"
	"github.com/jhoicas/Comercio-api/internal/application/customer"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/application/sale"
	"github.com/jhoicas/Comercio-api/internal/application/salereturn"
	"github.com/jhoicas/Comercio-api/internal/application/shift"
	"github.com/jhoicas/Comercio-api/internal/application/stockrequest"
	"github.com/jhoicas/Comercio-api/internal/application/transfer"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CustomerUC   *customer.Service
	SaleUC       *sale.Service
	ReturnUC     *salereturn.Service
	TransferUC   *transfer.Service
	RequestUC    *stockrequest.Service
	ShiftUC      *shift.Service
	InventoryUC  *inventory.Service
	LedgerReader *ledger.Reader
	JWTSecret    string
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

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Sales y devoluciones
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReturnUC)
	sales.Post("/", RequireRole(entity.RoleBiller, entity.RoleManager), saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/invoice.pdf", saleHandler.DownloadInvoice)
	sales.Post("/:id/returns", RequireRole(entity.RoleManager), saleHandler.CreateReturn)
	sales.Get("/:id/returns", saleHandler.ListReturns)

	// Traslados y solicitudes de reabastecimiento
	transferHandler := NewTransferHandler(deps.TransferUC, deps.RequestUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", RequireRole(entity.RoleStorekeeper, entity.RoleManager), transferHandler.Dispatch)
	transfers.Post("/acknowledge", RequireRole(entity.RoleStorekeeper, entity.RoleManager), transferHandler.Acknowledge)
	transfers.Get("/:batchId", transferHandler.GetBatch)

	requests := protected.Group("/stock-requests")
	requests.Post("/", transferHandler.CreateRequest)
	requests.Put("/resolve", RequireRole(entity.RoleManager), transferHandler.ResolveRequest)
	requests.Get("/", transferHandler.ListRequests)

	// Turnos de caja y arqueos
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts := protected.Group("/shifts")
	shifts.Post("/check-in", RequireRole(entity.RoleBiller), shiftHandler.CheckIn)
	shifts.Post("/check-out", RequireRole(entity.RoleBiller), shiftHandler.CheckOut)
	shifts.Get("/open", shiftHandler.GetOpen)

	handovers := protected.Group("/handovers")
	handovers.Post("/", RequireRole(entity.RoleBiller), shiftHandler.CreateHandover)
	handovers.Put("/:id/resolve", RequireRole(entity.RoleManager), shiftHandler.ResolveHandover)

	// Inventario (consultas)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/stock/:variationId", inventoryHandler.GetStock)
	inv.Get("/movements", inventoryHandler.ListMovements)

	// Auditoría financiera (solo manager)
	ledgerHandler := NewLedgerHandler(deps.LedgerReader)
	protected.Get("/ledger/transactions", RequireRole(entity.RoleManager), ledgerHandler.ListTransactions)
}
