// Package pdf genera el comprobante de venta con maroto v2.
//
// Estructura del documento:
//
//	┌─────────────────────────────────────────────┐
//	│ VINOTECA            Venta ABC12345          │
//	│ Comprobante         Fecha / Estado          │
//	├─────────────────────────────────────────────┤
//	│ Cliente                                     │
//	├──────────────┬───────┬─────────┬────────────┤
//	│ Producto     │ Cant. │ Precio  │ Subtotal   │
//	│ ...líneas                                   │
//	├─────────────────────────────────────────────┤
//	│                              TOTAL  $ ...   │
//	│ [QR]  referencia + nota interna             │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 110, Green: 22, Blue: 38} // borgoña
	colorGray    = &props.Color{Red: 120, Green: 120, Blue: 120}
	colorStripe  = &props.Color{Red: 245, Green: 240, Blue: 241}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[entity.SaleStatus]string{
	entity.SaleStatusPending:   "PENDIENTE",
	entity.SaleStatusPaid:      "PAGADA",
	entity.SaleStatusDelivered: "ENTREGADA",
	entity.SaleStatusCanceled:  "ANULADA",
}

// MarotoReceiptGenerator genera el comprobante PDF de una venta.
type MarotoReceiptGenerator struct {
	shopName string
}

// NewMarotoReceiptGenerator construye el generador. shopName encabeza el documento.
func NewMarotoReceiptGenerator(shopName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{shopName: shopName}
}

// GenerateReceiptPDF arma el comprobante y devuelve los bytes del PDF.
// El estado se imprime tal cual: una venta anulada sale marcada ANULADA.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRows(sale)...)
	m.AddRows(line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(customerRow(sale))
	m.AddRows(row.New(4))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sale.Items)...)
	m.AddRows(totalsRow(sale))
	m.AddRows(row.New(6))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("maroto generate: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRows(sale *entity.Sale) []core.Row {
	return []core.Row{
		row.New(16).Add(
			col.New(7).Add(
				text.New(g.shopName, props.Text{Size: 16, Style: fontstyle.Bold, Color: colorPrimary}),
				text.New("Comprobante de venta", props.Text{Size: 9, Top: 9, Color: colorGray}),
			),
			col.New(5).Add(
				text.New("Venta "+saleRef(sale.ID), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
				text.New("Fecha: "+sale.SaleDate.Format("2006-01-02"), props.Text{Size: 9, Top: 6, Align: align.Right}),
				text.New("Estado: "+statusLabel(sale.Status), props.Text{Size: 9, Top: 11, Align: align.Right, Style: fontstyle.Bold, Color: colorPrimary}),
			),
		),
	}
}

func customerRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Cliente", props.Text{Size: 8, Color: colorGray}),
			text.New(sale.CustomerName, props.Text{Size: 10, Top: 4, Style: fontstyle.Bold}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorWhite, Align: a, Top: 1.5}),
		).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h(6, "Producto", align.Left),
		h(2, "Cantidad", align.Right),
		h(2, "Precio", align.Right),
		h(2, "Subtotal", align.Right),
	)
}

func tableDetailRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, item := range items {
		r := row.New(7).Add(
			col.New(6).Add(text.New(item.ProductName, props.Text{Size: 9, Top: 1.5})),
			col.New(2).Add(text.New(strconv.FormatInt(item.Quantity, 10), props.Text{Size: 9, Top: 1.5, Align: align.Right})),
			col.New(2).Add(text.New(formatMoney(item.UnitPrice), props.Text{Size: 9, Top: 1.5, Align: align.Right})),
			col.New(2).Add(text.New(formatMoney(item.Subtotal), props.Text{Size: 9, Top: 1.5, Align: align.Right})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalsRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("%d líneas", len(sale.Items)), props.Text{Size: 8, Top: 5, Color: colorGray}),
		),
		col.New(2).Add(
			text.New("TOTAL", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Top: 4}),
		),
		col.New(2).Add(
			text.New("$ "+formatMoney(sale.Total), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Top: 4, Color: colorPrimary}),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	qrData := fmt.Sprintf("venta:%s|fecha:%s|total:%s",
		sale.ID, sale.SaleDate.Format("2006-01-02"), sale.Total.StringFixed(2))
	return row.New(28).Add(
		col.New(3).Add(code.NewQr(qrData, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Referencia: "+sale.ID, props.Text{Size: 7, Top: 8, Color: colorGray}),
			text.New("Documento de uso interno. No válido como factura.", props.Text{Size: 7, Top: 13, Color: colorGray}),
		),
	)
}

func statusLabel(s entity.SaleStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return strings.ToUpper(string(s))
}

// saleRef recorta el UUID al primer bloque, en mayúsculas, para el encabezado.
func saleRef(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}

// formatMoney imprime con miles y coma decimal: 1234567.5 -> 1.234.567,50.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
