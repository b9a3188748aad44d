package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vinoteca-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen general del negocio
// @Description  Totales de catálogo y clientes, ventas por estado, ingresos
// @Description  (solo paid y delivered), productos con stock bajo y las
// @Description  últimas ventas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LedgerAudit godoc
// @Summary      Auditoría del ledger contra existencias
// @Description  Recalcula el stock de cada producto sumando su ledger y lo
// @Description  compara con la tabla de existencias. consistent en false
// @Description  delata una divergencia que hay que investigar.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerAuditResponse
// @Router       /api/reports/ledger-audit [get]
func (h *ReportHandler) LedgerAudit(c *fiber.Ctx) error {
	out, err := h.uc.LedgerAudit(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
