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

	"github.com/jhoicas/Comercio-api/internal/application/auth"
	"github.com/jhoicas/Comercio-api/internal/application/customer"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/application/sale"
	"github.com/jhoicas/Comercio-api/internal/application/salereturn"
	"github.com/jhoicas/Comercio-api/internal/application/shift"
	"github.com/jhoicas/Comercio-api/internal/application/stockregister"
	"github.com/jhoicas/Comercio-api/internal/application/stockrequest"
	"github.com/jhoicas/Comercio-api/internal/application/transfer"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/gcs"
	infrapdf "github.com/jhoicas/Comercio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/Comercio-api/internal/interfaces/http"
	"github.com/jhoicas/Comercio-api/pkg/config"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	txRunner := postgres.NewTxRunner(pool)
	reads := postgres.NewRepositories(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	requestRepo := postgres.NewStockRequestRepository(pool)

	lg := ledger.New()
	recorder := stockregister.New()
	notifier := whatsapp.NewClient(cfg.WhatsApp, log)

	// Colaboradores post-commit de la venta. Con bucket vacío no se sube nada.
	fx := sale.SideEffects{
		Renderer:    infrapdf.NewMarotoInvoiceRenderer(),
		Notifier:    notifier,
		InvoicePath: cfg.Storage.InvoicePath,
		TemplateID:  cfg.WhatsApp.InvoiceTemplateID,
	}
	if cfg.Storage.Bucket != "" {
		uploader, err := gcs.NewUploader(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar Google Cloud Storage")
		}
		defer uploader.Close()
		fx.Storage = uploader
	}

	authUC := auth.NewUseCase(employeeRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := customer.NewService(reads.Customers)
	saleUC := sale.NewService(txRunner, reads, companyRepo, employeeRepo, lg, recorder, fx, log)
	returnUC := salereturn.NewService(txRunner, reads, lg, recorder, log)
	transferUC := transfer.NewService(txRunner, reads, recorder, log)
	requestUC := stockrequest.NewService(requestRepo)
	shiftUC := shift.NewService(txRunner, reads, employeeRepo, lg, notifier, cfg.WhatsApp.HandoverTemplateID, log)
	inventoryUC := inventory.NewService(reads)
	ledgerReader := ledger.NewReader(reads.Accounts)

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
		Title:    "Comercio POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CustomerUC:   customerUC,
		SaleUC:       saleUC,
		ReturnUC:     returnUC,
		TransferUC:   transferUC,
		RequestUC:    requestUC,
		ShiftUC:      shiftUC,
		InventoryUC:  inventoryUC,
		LedgerReader: ledgerReader,
		JWTSecret:    cfg.JWT.Secret,
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
