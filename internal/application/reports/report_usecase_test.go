package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/application/reports"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	products  int64
	customers int64
	byStatus  []repository.SalesStatusSummary
	lowStock  []*repository.StockLevel
	audit     []repository.LedgerAuditRow
	err       error
}

func (r *fakeReportRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.products, r.err
}

func (r *fakeReportRepo) CountCustomers(ctx context.Context) (int64, error) {
	return r.customers, r.err
}

func (r *fakeReportRepo) SalesByStatus(ctx context.Context) ([]repository.SalesStatusSummary, error) {
	return r.byStatus, r.err
}

func (r *fakeReportRepo) LowStock(ctx context.Context, threshold int64, limit int) ([]*repository.StockLevel, error) {
	return r.lowStock, r.err
}

func (r *fakeReportRepo) LedgerAudit(ctx context.Context) ([]repository.LedgerAuditRow, error) {
	return r.audit, r.err
}

type fakeSaleRepo struct {
	recent []*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { return nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) { return nil, nil }

func (r *fakeSaleRepo) Update(s *entity.Sale) error { return nil }

func (r *fakeSaleRepo) List(status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	return r.recent, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Dashboard
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: los ingresos suman solo ventas paid y delivered; pending y canceled
// cuentan para el total de ventas pero no facturan.
func TestDashboard_IngresosSoloPagadasYEntregadas(t *testing.T) {
	reportRepo := &fakeReportRepo{
		products:  12,
		customers: 4,
		byStatus: []repository.SalesStatusSummary{
			{Status: "pending", Count: 3, Revenue: decimal.NewFromInt(1000)},
			{Status: "paid", Count: 2, Revenue: decimal.NewFromInt(5000)},
			{Status: "delivered", Count: 1, Revenue: decimal.NewFromInt(2500)},
			{Status: "canceled", Count: 1, Revenue: decimal.NewFromInt(800)},
		},
	}
	uc := reports.NewReportUseCase(reportRepo, &fakeSaleRepo{}, 5)

	resp, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.TotalProducts)
	assert.Equal(t, int64(4), resp.TotalCustomers)
	assert.Equal(t, int64(7), resp.TotalSales, "todas las ventas cuentan, también las canceladas")
	assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(7500)),
		"ingresos = 5000 paid + 2500 delivered, obtuvo %s", resp.TotalRevenue)
	assert.Len(t, resp.SalesByStatus, 4)
}

// Caso 2: bajos en stock y últimas ventas se mapean al DTO del panel.
func TestDashboard_MapeaBajosEnStockYUltimasVentas(t *testing.T) {
	saleDate, err := time.Parse("2006-01-02", "2026-08-20")
	require.NoError(t, err)

	reportRepo := &fakeReportRepo{
		lowStock: []*repository.StockLevel{
			{ProductID: "p-1", ProductName: "Malbec Reserva 2021", UnitMeasure: "unit", Quantity: 2},
		},
	}
	saleRepo := &fakeSaleRepo{
		recent: []*entity.Sale{
			{
				ID:           "s-1",
				CustomerName: "Bodegón El Tano",
				SaleDate:     saleDate,
				Status:       entity.SaleStatusPaid,
				Total:        decimal.NewFromInt(143400),
			},
		},
	}
	uc := reports.NewReportUseCase(reportRepo, saleRepo, 5)

	resp, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.LowStock, 1)
	assert.Equal(t, "Malbec Reserva 2021", resp.LowStock[0].ProductName)
	assert.Equal(t, int64(2), resp.LowStock[0].Quantity)

	require.Len(t, resp.RecentSales, 1)
	assert.Equal(t, "2026-08-20", resp.RecentSales[0].SaleDate)
	assert.Equal(t, "paid", resp.RecentSales[0].Status)
	assert.True(t, resp.RecentSales[0].Total.Equal(decimal.NewFromInt(143400)))
}

func TestDashboard_ErrorDeLaBaseSube(t *testing.T) {
	reportRepo := &fakeReportRepo{err: errors.New("connection refused")}
	uc := reports.NewReportUseCase(reportRepo, &fakeSaleRepo{}, 5)

	_, err := uc.Dashboard(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LedgerAudit
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerAudit_TodoConsistente(t *testing.T) {
	reportRepo := &fakeReportRepo{
		audit: []repository.LedgerAuditRow{
			{ProductID: "p-1", ProductName: "Malbec", Materialized: 36, LedgerSum: 36, Consistent: true},
			{ProductID: "p-2", ProductName: "Espumante", Materialized: 14, LedgerSum: 14, Consistent: true},
		},
	}
	uc := reports.NewReportUseCase(reportRepo, &fakeSaleRepo{}, 5)

	resp, err := uc.LedgerAudit(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Consistent)
	assert.Len(t, resp.Rows, 2)
}

// Una sola fila inconsistente marca todo el reporte como inconsistente.
func TestLedgerAudit_DetectaInconsistencia(t *testing.T) {
	reportRepo := &fakeReportRepo{
		audit: []repository.LedgerAuditRow{
			{ProductID: "p-1", ProductName: "Malbec", Materialized: 36, LedgerSum: 36, Consistent: true},
			{ProductID: "p-2", ProductName: "Espumante", Materialized: 10, LedgerSum: 14, Consistent: false},
		},
	}
	uc := reports.NewReportUseCase(reportRepo, &fakeSaleRepo{}, 5)

	resp, err := uc.LedgerAudit(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Consistent, "una fila inconsistente delata el reporte completo")
	require.Len(t, resp.Rows, 2)
	assert.False(t, resp.Rows[1].Consistent)
	assert.Equal(t, int64(10), resp.Rows[1].Materialized)
	assert.Equal(t, int64(14), resp.Rows[1].LedgerSum)
}

// Sin productos el ledger está trivialmente consistente.
func TestLedgerAudit_SinProductos(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeReportRepo{}, &fakeSaleRepo{}, 5)

	resp, err := uc.LedgerAudit(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Consistent)
	assert.Empty(t, resp.Rows)
}
