package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// DocumentUseCase genera los documentos derivados de una venta: el comprobante
// PDF para el cliente y el XML de intercambio contable.
type DocumentUseCase struct {
	saleRepo repository.SaleRepository
	pdf      ReceiptPDFGenerator
	xml      SaleXMLExporter
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(saleRepo repository.SaleRepository, pdf ReceiptPDFGenerator, xml SaleXMLExporter) *DocumentUseCase {
	return &DocumentUseCase{saleRepo: saleRepo, pdf: pdf, xml: xml}
}

// ReceiptPDF genera el comprobante de la venta. El estado se imprime en el
// documento, incluso para ventas canceladas: el comprobante de una anulada
// sale marcado como tal en vez de rechazarse.
func (uc *DocumentUseCase) ReceiptPDF(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.pdf.GenerateReceiptPDF(ctx, sale)
	if err != nil {
		return nil, "", fmt.Errorf("generate receipt pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", shortRef(sale.ID)), nil
}

// ExportXML serializa la venta al XML de intercambio contable.
func (uc *DocumentUseCase) ExportXML(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	xmlBytes, err := uc.xml.ExportSaleXML(sale)
	if err != nil {
		return nil, "", fmt.Errorf("export sale xml: %w", err)
	}
	return xmlBytes, fmt.Sprintf("venta_%s.xml", shortRef(sale.ID)), nil
}

// shortRef recorta el UUID al primer bloque para nombres de archivo legibles.
func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
