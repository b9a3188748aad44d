package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateSale — transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: pending → paid.
func TestUpdateSale_PendienteAPagada(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		Status: strPtr("paid"),
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	assert.Equal(t, entity.SaleStatusPaid, f.saleRepo.sales[resp.ID].Status, "el estado debe persistirse")
}

// Caso 2: paid vuelve a pending (se registró el pago por error).
func TestUpdateSale_PagadaVuelveAPendiente(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("paid")})
	require.NoError(t, err)

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("pending")})
	require.NoError(t, err)
	assert.Equal(t, "pending", updated.Status)
}

// Caso 3: delivered es terminal, ninguna edición pasa.
func TestUpdateSale_EntregadaEsTerminal(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("delivered")})
	require.NoError(t, err)

	_, err = f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("paid")})

	var sterr *domain.StateError
	require.ErrorAs(t, err, &sterr)
	assert.Equal(t, "delivered", sterr.Status)
	assert.ErrorIs(t, err, domain.ErrConflict, "el error de estado se clasifica como conflicto")

	// Tampoco pasan las ediciones de atributos
	_, err = f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{SaleDate: strPtr("2026-08-21")})
	assert.ErrorAs(t, err, &sterr)
}

// Caso 4: estado fuera del conjunto → error de validación.
func TestUpdateSale_EstadoInvalido(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("draft")})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["status"], "debe ser pending, paid, delivered o canceled")
}

func TestUpdateSale_NoExiste(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpdateSale(context.Background(), "no-existe", dto.UpdateSaleRequest{Status: strPtr("paid")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateSale — cancelación con reversos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: cancelar emite un sale_reversal por cada movimiento sale de la venta
// y el stock vuelve al punto de partida. El ledger conserva todo el historial.
func TestUpdateSale_CancelarReponeStock(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	require.Equal(t, int64(36), f.stockRepo.quantities["p-1"])
	require.Equal(t, int64(14), f.stockRepo.quantities["p-2"])

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		Status: strPtr("canceled"),
	})
	require.NoError(t, err)
	assert.Equal(t, "canceled", updated.Status)

	assert.Equal(t, int64(48), f.stockRepo.quantities["p-1"], "el stock debe volver a 48")
	assert.Equal(t, int64(20), f.stockRepo.quantities["p-2"], "el stock debe volver a 20")

	// 2 movimientos sale + 2 reversos, nada se borra
	require.Len(t, f.movRepo.movements, 4)
	reversos, err := f.movRepo.ListBySale(resp.ID, entity.MovementSaleReversal)
	require.NoError(t, err)
	require.Len(t, reversos, 2)
	for _, rev := range reversos {
		assert.Equal(t, resp.ID, rev.SaleID)
		assert.Positive(t, rev.Quantity)
	}

	assert.Equal(t, entity.SaleStatusCanceled, f.saleRepo.sales[resp.ID].Status)
}

// Caso 2: una venta pagada también puede cancelarse.
func TestUpdateSale_CancelarVentaPagada(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("paid")})
	require.NoError(t, err)

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("canceled")})
	require.NoError(t, err)
	assert.Equal(t, "canceled", updated.Status)
	assert.Equal(t, int64(48), f.stockRepo.quantities["p-1"])
}

// Caso 3: re-cancelar se rechaza y no duplica reversos.
func TestUpdateSale_ReCancelarRechazado(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("canceled")})
	require.NoError(t, err)
	require.Len(t, f.movRepo.movements, 4)

	_, err = f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("canceled")})

	var sterr *domain.StateError
	require.ErrorAs(t, err, &sterr)
	assert.Equal(t, "canceled", sterr.Status)

	assert.Len(t, f.movRepo.movements, 4, "no debe haber reversos duplicados")
	assert.Equal(t, int64(48), f.stockRepo.quantities["p-1"], "el stock no debe moverse de nuevo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateSale — edición de atributos y líneas
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: reemplazar líneas recalcula snapshots y total pero NO toca el
// inventario: los movimientos de la creación quedan tal cual.
func TestUpdateSale_EditarLineasNoTocaInventario(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	nuevasLineas := []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 2}}
	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		Items: &nuevasLineas,
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("17000.00")),
		"total recalculado = 2x8500, obtuvo %s", updated.Total)

	assert.Len(t, f.movRepo.movements, 2, "los movimientos de la creación no se tocan")
	assert.Equal(t, int64(36), f.stockRepo.quantities["p-1"], "el stock no debe moverse")
	assert.Equal(t, int64(14), f.stockRepo.quantities["p-2"])
}

// Caso 2: las líneas nuevas se validan igual que al crear.
func TestUpdateSale_LineasInvalidas(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	var verr *domain.ValidationError

	vacias := []dto.SaleItemRequest{}
	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Items: &vacias})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["items"], "debe incluir al menos una línea")

	duplicadas := []dto.SaleItemRequest{
		{ProductID: "p-1", Quantity: 1},
		{ProductID: "p-1", Quantity: 2},
	}
	_, err = f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Items: &duplicadas})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["items"], "duplicate items found")
}

// Caso 3: cambiar el cliente refresca el snapshot del nombre.
func TestUpdateSale_CambioDeClienteActualizaSnapshot(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)
	f.seedCustomer("c-2", "María González")

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		CustomerID: strPtr("c-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "c-2", updated.CustomerID)
	assert.Equal(t, "María González", updated.CustomerName)
}

// Caso 4: cliente inexistente o vacío → error de validación.
func TestUpdateSale_ClienteInvalido(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	var verr *domain.ValidationError

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		CustomerID: strPtr("no-existe"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["customer_id"], "cliente no encontrado")

	_, err = f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		CustomerID: strPtr(""),
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["customer_id"], "es obligatorio")
}

// Caso 5: fecha con formato inválido → error de validación.
func TestUpdateSale_FechaInvalida(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		SaleDate: strPtr("agosto 20"),
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["sale_date"], "formato esperado YYYY-MM-DD")
}

// Caso 6: cambiar la fecha de una venta viva.
func TestUpdateSale_CambioDeFecha(t *testing.T) {
	f := newFixture()
	resp := f.createSale(t)

	updated, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{
		SaleDate: strPtr("2026-08-22"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-22", updated.SaleDate)
}
