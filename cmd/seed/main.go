// seed carga datos de demostración en una base recién migrada: un usuario
// admin, catálogo de vinoteca con stock inicial, clientes y un par de ventas.
// Pensado para correr una sola vez sobre una base vacía; los productos y el
// usuario repetidos se saltan, el resto de los datos se duplicaría.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vinoteca-api/internal/application/auth"
	"github.com/jhoicas/vinoteca-api/internal/application/catalog"
	"github.com/jhoicas/vinoteca-api/internal/application/customers"
	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/application/inventory"
	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vinoteca-api/pkg/config"
	"github.com/jhoicas/vinoteca-api/pkg/logger"
)

type seedProduct struct {
	name        string
	description string
	price       string
	unitMeasure string
	initialQty  int64
}

var seedProducts = []seedProduct{
	{"Malbec Reserva 2021", "Tinto de guarda, 14 meses en roble", "8500.00", "unit", 48},
	{"Cabernet Sauvignon 2019", "Tinto estructurado, taninos firmes", "9200.00", "unit", 36},
	{"Torrontés Joven 2023", "Blanco aromático de altura", "4300.00", "unit", 60},
	{"Espumante Brut Nature", "Método tradicional, sin dosaje", "6800.00", "unit", 24},
	{"Jamón crudo serrano", "Pieza curada 14 meses, venta al peso", "12500.00", "weight", 10},
	{"Queso brie", "Pasta blanda, venta al peso", "7400.00", "weight", 8},
}

var seedCustomers = []dto.CreateCustomerRequest{
	{Name: "Bodegón La Esquina", Email: "compras@laesquina.example", Phone: "+54 11 4555 0198"},
	{Name: "Restaurante Del Puerto", Email: "admin@delpuerto.example"},
	{Name: "María Fernández", Phone: "+54 9 261 555 7243"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

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
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := catalog.NewProductUseCase(txRunner, productRepo)
	customerUC := customers.NewCustomerUseCase(customerRepo)
	movementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo, stockRepo)
	saleUC := sales.NewSaleUseCase(txRunner, movementUC, saleRepo, customerRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	seedAdmin(log, authUC)
	productIDs := seedCatalog(ctx, log, productUC, movementUC)
	customerIDs := seedClients(ctx, log, customerUC)
	seedSales(ctx, log, saleUC, customerIDs, productIDs)

	log.Info().Msg("datos de demostración cargados")
}

func seedAdmin(log *logger.Logger, authUC *auth.AuthUseCase) {
	_, err := authUC.RegisterUser(dto.RegisterRequest{
		Email:    "admin@vinoteca.local",
		Password: "cambiame-ya",
		Name:     "Administrador",
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Warn().Msg("usuario admin ya existe, se salta")
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario admin")
	default:
		log.Info().Str("email", "admin@vinoteca.local").Msg("usuario admin creado")
	}
}

// seedCatalog crea los productos y les carga el stock inicial como compras.
// Devuelve los IDs por nombre para armar las ventas de ejemplo.
func seedCatalog(ctx context.Context, log *logger.Logger, productUC *catalog.ProductUseCase, movementUC *inventory.RegisterMovementUseCase) map[string]string {
	ids := make(map[string]string, len(seedProducts))
	for _, p := range seedProducts {
		created, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
			UnitMeasure: p.unitMeasure,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			log.Warn().Str("producto", p.name).Msg("producto ya existe, se salta")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.name).Msg("crear producto")
		}
		ids[p.name] = created.ID

		if _, err := movementUC.Register(ctx, inventory.MovementInputDTO{
			ProductID: created.ID,
			Type:      entity.MovementPurchase,
			Quantity:  p.initialQty,
		}); err != nil {
			log.Fatal().Err(err).Str("producto", p.name).Msg("cargar stock inicial")
		}
		log.Info().Str("producto", p.name).Int64("stock", p.initialQty).Msg("producto creado")
	}
	return ids
}

func seedClients(ctx context.Context, log *logger.Logger, customerUC *customers.CustomerUseCase) []string {
	ids := make([]string, 0, len(seedCustomers))
	for _, c := range seedCustomers {
		created, err := customerUC.Create(ctx, c)
		if err != nil {
			log.Fatal().Err(err).Str("cliente", c.Name).Msg("crear cliente")
		}
		ids = append(ids, created.ID)
		log.Info().Str("cliente", c.Name).Msg("cliente creado")
	}
	return ids
}

// seedSales registra dos ventas de ejemplo y deja la primera en paid para que
// el dashboard arranque con ingresos distintos de cero.
func seedSales(ctx context.Context, log *logger.Logger, saleUC *sales.SaleUseCase, customerIDs []string, productIDs map[string]string) {
	if len(customerIDs) < 3 || len(productIDs) < len(seedProducts) {
		log.Warn().Msg("faltan clientes o productos, no se crean ventas de ejemplo")
		return
	}

	first, err := saleUC.CreateSale(ctx, dto.CreateSaleRequest{
		CustomerID: customerIDs[0],
		Items: []dto.SaleItemRequest{
			{ProductID: productIDs["Malbec Reserva 2021"], Quantity: 12},
			{ProductID: productIDs["Espumante Brut Nature"], Quantity: 6},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear venta de ejemplo")
	}
	paid := string(entity.SaleStatusPaid)
	if _, err := saleUC.UpdateSale(ctx, first.ID, dto.UpdateSaleRequest{Status: &paid}); err != nil {
		log.Fatal().Err(err).Msg("marcar venta como pagada")
	}
	log.Info().Str("venta", first.ID).Msg("venta pagada creada")

	second, err := saleUC.CreateSale(ctx, dto.CreateSaleRequest{
		CustomerID: customerIDs[2],
		Items: []dto.SaleItemRequest{
			{ProductID: productIDs["Torrontés Joven 2023"], Quantity: 2},
			{ProductID: productIDs["Queso brie"], Quantity: 1},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear venta de ejemplo")
	}
	log.Info().Str("venta", second.ID).Msg("venta pendiente creada")
}
