package reports

import (
	"context"

	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportUseCase consultas de lectura para el panel y la auditoría del ledger.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
	threshold  int64
}

// NewReportUseCase construye el caso de uso. threshold es la cantidad por
// debajo de la cual un producto aparece como bajo en stock.
func NewReportUseCase(reportRepo repository.ReportRepository, saleRepo repository.SaleRepository, threshold int64) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, saleRepo: saleRepo, threshold: threshold}
}

// Dashboard arma los contadores del panel: tamaño del catálogo, clientes,
// ventas por estado, ingresos, productos bajos en stock y últimas ventas.
// Los ingresos suman solo ventas paid y delivered.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	products, err := uc.reportRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.reportRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.reportRepo.SalesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.reportRepo.LowStock(ctx, uc.threshold, 10)
	if err != nil {
		return nil, err
	}
	recent, err := uc.saleRepo.List("", 5, 0)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalProducts:  products,
		TotalCustomers: customers,
		TotalRevenue:   decimal.Zero,
		SalesByStatus:  make([]dto.SalesStatusSummary, 0, len(byStatus)),
		LowStock:       make([]dto.StockLevelResponse, 0, len(lowStock)),
		RecentSales:    make([]dto.RecentSale, 0, len(recent)),
	}
	for _, s := range byStatus {
		resp.TotalSales += s.Count
		if s.Status == string(entity.SaleStatusPaid) || s.Status == string(entity.SaleStatusDelivered) {
			resp.TotalRevenue = resp.TotalRevenue.Add(s.Revenue)
		}
		resp.SalesByStatus = append(resp.SalesByStatus, dto.SalesStatusSummary{
			Status:  s.Status,
			Count:   s.Count,
			Revenue: s.Revenue,
		})
	}
	for _, lvl := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.StockLevelResponse{
			ProductID:   lvl.ProductID,
			ProductName: lvl.ProductName,
			UnitMeasure: lvl.UnitMeasure,
			Quantity:    lvl.Quantity,
			UpdatedAt:   lvl.UpdatedAt,
		})
	}
	for _, s := range recent {
		resp.RecentSales = append(resp.RecentSales, dto.RecentSale{
			ID:           s.ID,
			CustomerName: s.CustomerName,
			SaleDate:     s.SaleDate.Format("2006-01-02"),
			Status:       string(s.Status),
			Total:        s.Total,
		})
	}
	return resp, nil
}

// LedgerAudit verifica producto por producto que las existencias materializadas
// coincidan con la suma de deltas del ledger. Cualquier fila inconsistente
// delata un ajuste hecho por fuera de los movimientos.
func (uc *ReportUseCase) LedgerAudit(ctx context.Context) (*dto.LedgerAuditResponse, error) {
	rows, err := uc.reportRepo.LedgerAudit(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.LedgerAuditResponse{
		Consistent: true,
		Rows:       make([]dto.LedgerAuditRow, 0, len(rows)),
	}
	for _, r := range rows {
		if !r.Consistent {
			resp.Consistent = false
		}
		resp.Rows = append(resp.Rows, dto.LedgerAuditRow{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Materialized: r.Materialized,
			LedgerSum:    r.LedgerSum,
			Consistent:   r.Consistent,
		})
	}
	return resp, nil
}
