package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la venta congela snapshots de cliente y productos, calcula el total
// y descuenta stock emitiendo un movimiento sale por línea.
func TestCreateSale_CongelaSnapshotsYDescuentaStock(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	assert.Equal(t, "pending", resp.Status, "toda venta nace pending")
	assert.Equal(t, "Bodegón El Tano", resp.CustomerName)
	assert.Equal(t, "2026-08-20", resp.SaleDate)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Malbec Reserva 2021", resp.Items[0].ProductName)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("8500.00")))
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.RequireFromString("102000.00")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("143400.00")),
		"total = 12x8500 + 6x6900, obtuvo %s", resp.Total)

	// Un movimiento sale por línea, atado a la venta
	require.Len(t, f.movRepo.movements, 2)
	for _, mov := range f.movRepo.movements {
		assert.Equal(t, entity.MovementSale, mov.Type)
		assert.Equal(t, resp.ID, mov.SaleID)
	}

	assert.Equal(t, int64(36), f.stockRepo.quantities["p-1"], "48 - 12")
	assert.Equal(t, int64(14), f.stockRepo.quantities["p-2"], "20 - 6")
}

// Caso 2: el status que venga en el body se ignora.
func TestCreateSale_IgnoraStatusDelBody(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	resp, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Status:     "paid",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status, "el status del body no debe respetarse")
}

// Caso 3: los snapshots no siguen cambios posteriores del catálogo.
func TestCreateSale_PrecioCongeladoNoSigueAlCatalogo(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	f.products.products["p-1"].Price = decimal.NewFromInt(99999)
	f.products.products["p-1"].Name = "Malbec Reserva 2021 (nuevo precio)"

	stored, err := f.uc.GetSale(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("8500.00")),
		"el precio congelado no debe cambiar")
	assert.Equal(t, "Malbec Reserva 2021", stored.Items[0].ProductName,
		"el nombre congelado no debe cambiar")
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("143400.00")))
}

// Caso 4: sin fecha se usa la del día.
func TestCreateSale_FechaVaciaEsHoy(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	resp, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.SaleDate)
}

// Caso 5: la sobreventa está permitida, el stock queda negativo.
func TestCreateSale_PermiteSobreventa(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 1)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), f.stockRepo.quantities["p-1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale — validación
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: cliente obligatorio y existente.
func TestCreateSale_ClienteInvalido(t *testing.T) {
	f := newFixture()
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["customer_id"], "es obligatorio")

	_, err = f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "no-existe",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["customer_id"], "cliente no encontrado")
}

// Caso 2: al menos una línea.
func TestCreateSale_SinLineas(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{CustomerID: "c-1"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["items"], "debe incluir al menos una línea")
}

// Caso 3: fecha con formato inválido.
func TestCreateSale_FechaInvalida(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		SaleDate:   "20/08/2026",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["sale_date"], "formato esperado YYYY-MM-DD")
}

// Caso 4: un producto repetido se reporta una sola vez.
func TestCreateSale_ProductoRepetido(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-1", Quantity: 3},
			{ProductID: "p-1", Quantity: 4},
		},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"duplicate items found"}, verr.Fields["items"],
		"el duplicado se reporta una sola vez aunque se repita más veces")
}

// Caso 5: cantidad por línea mayor que cero.
func TestCreateSale_CantidadInvalida(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 0}},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["items[0].quantity"], "debe ser mayor que cero")
}

// Caso 6: producto inexistente en una línea.
func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items:      []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: 1}},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["items[0].product_id"], "producto no encontrado")
}

// Caso 7: una creación rechazada no deja rastro en inventario ni en ventas.
func TestCreateSale_ValidacionNoTocaInventario(t *testing.T) {
	f := newFixture()
	f.seedCustomer("c-1", "María González")
	f.seedProduct("p-1", "Torrontés Joven 2023", "3200.00", 10)

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		Items:      []dto.SaleItemRequest{{ProductID: "p-1", Quantity: -2}},
	})
	require.Error(t, err)

	assert.Empty(t, f.movRepo.movements, "no debe haber movimientos")
	assert.Equal(t, int64(10), f.stockRepo.quantities["p-1"], "el stock no debe tocarse")
	assert.Empty(t, f.saleRepo.sales, "no debe haber ventas persistidas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetSale / ListSales
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_NoExiste(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSale(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSales_EstadoInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ListSales(context.Background(), "draft", 20, 0)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["status"], "debe ser pending, paid, delivered o canceled")
}

func TestListSales_FiltraPorEstado(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	pendientes, err := f.uc.ListSales(context.Background(), "pending", 20, 0)
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, resp.ID, pendientes[0].ID)

	pagadas, err := f.uc.ListSales(context.Background(), "paid", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, pagadas)
}
