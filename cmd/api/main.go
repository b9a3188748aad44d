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
	_ "github.com/jhoicas/vinoteca-api/docs"
	"github.com/jhoicas/vinoteca-api/internal/application/auth"
	"github.com/jhoicas/vinoteca-api/internal/application/catalog"
	"github.com/jhoicas/vinoteca-api/internal/application/customers"
	"github.com/jhoicas/vinoteca-api/internal/application/inventory"
	"github.com/jhoicas/vinoteca-api/internal/application/reports"
	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/vinoteca-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vinoteca-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/vinoteca-api/internal/interfaces/http"
	"github.com/jhoicas/vinoteca-api/pkg/config"
	"github.com/jhoicas/vinoteca-api/pkg/logger"
)

// @title                       Vinoteca API
// @version                     1.0
// @description                 Back-office de vinoteca: catálogo, inventario, clientes, ventas y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escribir "Bearer" seguido del token JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := catalog.NewProductUseCase(txRunner, productRepo)
	customerUC := customers.NewCustomerUseCase(customerRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo, stockRepo)
	saleUC := sales.NewSaleUseCase(txRunner, registerMovementUC, saleRepo, customerRepo, productRepo)

	// Documentos de venta: recibo PDF y export XML
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	xmlExporter := export.NewEtreeSaleExporter()
	documentUC := sales.NewDocumentUseCase(saleRepo, pdfGenerator, xmlExporter)

	reportUC := reports.NewReportUseCase(reportRepo, saleRepo, cfg.Inventory.LowStockThreshold)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Vinoteca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		CustomerUC:       customerUC,
		RegisterMovement: registerMovementUC,
		SaleUC:           saleUC,
		DocumentUC:       documentUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
