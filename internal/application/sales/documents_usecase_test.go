package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de generadores de documentos
// ──────────────────────────────────────────────────────────────────────────────

type fakePDFGenerator struct {
	lastSale *entity.Sale
	err      error
}

func (g *fakePDFGenerator) GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastSale = sale
	return []byte("%PDF-fake"), nil
}

type fakeXMLExporter struct {
	lastSale *entity.Sale
	err      error
}

func (e *fakeXMLExporter) ExportSaleXML(sale *entity.Sale) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.lastSale = sale
	return []byte("<Sale/>"), nil
}

func newDocsFixture(t *testing.T) (*sales.DocumentUseCase, *fixture, *dto.SaleResponse, *fakePDFGenerator, *fakeXMLExporter) {
	t.Helper()
	f := newFixture()
	resp := f.createSale(t)
	pdfGen := &fakePDFGenerator{}
	xmlExp := &fakeXMLExporter{}
	return sales.NewDocumentUseCase(f.saleRepo, pdfGen, xmlExp), f, resp, pdfGen, xmlExp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ReceiptPDF / ExportXML
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiptPDF_DevuelveBytesYNombre(t *testing.T) {
	docs, _, resp, pdfGen, _ := newDocsFixture(t)

	pdfBytes, filename, err := docs.ReceiptPDF(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	assert.Equal(t, "venta_"+resp.ID[:8]+".pdf", filename,
		"el nombre usa el primer bloque del UUID")
	require.NotNil(t, pdfGen.lastSale)
	assert.Equal(t, resp.ID, pdfGen.lastSale.ID)
}

// Una venta cancelada también emite comprobante: sale marcado con su estado.
func TestReceiptPDF_VentaCanceladaTambienGenera(t *testing.T) {
	docs, f, resp, pdfGen, _ := newDocsFixture(t)

	_, err := f.uc.UpdateSale(context.Background(), resp.ID, dto.UpdateSaleRequest{Status: strPtr("canceled")})
	require.NoError(t, err)

	_, _, err = docs.ReceiptPDF(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCanceled, pdfGen.lastSale.Status,
		"el generador debe recibir la venta con su estado real")
}

func TestReceiptPDF_VentaInexistente(t *testing.T) {
	docs, _, _, _, _ := newDocsFixture(t)

	_, _, err := docs.ReceiptPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptPDF_ErrorDelGenerador(t *testing.T) {
	docs, _, resp, pdfGen, _ := newDocsFixture(t)
	pdfGen.err = errors.New("fuente no disponible")

	_, _, err := docs.ReceiptPDF(context.Background(), resp.ID)
	assert.ErrorContains(t, err, "generate receipt pdf")
}

func TestExportXML_DevuelveBytesYNombre(t *testing.T) {
	docs, _, resp, _, xmlExp := newDocsFixture(t)

	xmlBytes, filename, err := docs.ExportXML(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("<Sale/>"), xmlBytes)
	assert.Equal(t, "venta_"+resp.ID[:8]+".xml", filename)
	require.NotNil(t, xmlExp.lastSale)
	assert.Equal(t, resp.ID, xmlExp.lastSale.ID)
}

func TestExportXML_VentaInexistente(t *testing.T) {
	docs, _, _, _, _ := newDocsFixture(t)

	_, _, err := docs.ExportXML(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
