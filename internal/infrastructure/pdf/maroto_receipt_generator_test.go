package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/infrastructure/pdf"
)

func testSale(t *testing.T) *entity.Sale {
	t.Helper()
	saleDate, err := time.Parse("2006-01-02", "2026-08-20")
	require.NoError(t, err)
	return &entity.Sale{
		ID:           "3f1c9e2a-0000-0000-0000-000000000001",
		CustomerID:   "c-1",
		CustomerName: "Bodegón El Tano",
		SaleDate:     saleDate,
		Status:       entity.SaleStatusPaid,
		Total:        decimal.RequireFromString("143400"),
		Items: []entity.SaleItem{
			{
				ProductID:   "p-1",
				ProductName: "Malbec Reserva 2021",
				UnitPrice:   decimal.RequireFromString("8500"),
				Quantity:    12,
				Subtotal:    decimal.RequireFromString("102000"),
			},
			{
				ProductID:   "p-2",
				ProductName: "Espumante Brut Nature",
				UnitPrice:   decimal.RequireFromString("6900"),
				Quantity:    6,
				Subtotal:    decimal.RequireFromString("41400"),
			},
		},
	}
}

func TestGenerateReceiptPDF_GeneraDocumento(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("Vinoteca Di Vino")

	out, err := gen.GenerateReceiptPDF(context.Background(), testSale(t))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

// El comprobante de una venta anulada se genera igual, marcado con su estado.
func TestGenerateReceiptPDF_VentaCancelada(t *testing.T) {
	sale := testSale(t)
	sale.Status = entity.SaleStatusCanceled

	out, err := pdf.NewMarotoReceiptGenerator("Vinoteca Di Vino").GenerateReceiptPDF(context.Background(), sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

// Muchas líneas fuerzan el salto de página sin romper la generación.
func TestGenerateReceiptPDF_MuchasLineas(t *testing.T) {
	sale := testSale(t)
	sale.Items = nil
	for i := 0; i < 60; i++ {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   fmt.Sprintf("p-%d", i),
			ProductName: fmt.Sprintf("Vino de prueba %d", i),
			UnitPrice:   decimal.NewFromInt(1000),
			Quantity:    1,
			Subtotal:    decimal.NewFromInt(1000),
		})
	}

	out, err := pdf.NewMarotoReceiptGenerator("Vinoteca Di Vino").GenerateReceiptPDF(context.Background(), sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
