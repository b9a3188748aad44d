// Package export serializa ventas al XML de intercambio con el sistema contable.
package export

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

var _ sales.SaleXMLExporter = (*EtreeSaleExporter)(nil)

// EtreeSaleExporter arma el documento XML de una venta con etree.
type EtreeSaleExporter struct{}

// NewEtreeSaleExporter construye el exportador.
func NewEtreeSaleExporter() *EtreeSaleExporter {
	return &EtreeSaleExporter{}
}

// ExportSaleXML serializa la venta con sus snapshots congelados. Los montos
// van con dos decimales y las fechas en ISO.
func (e *EtreeSaleExporter) ExportSaleXML(sale *entity.Sale) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Sale")
	root.CreateAttr("id", sale.ID)
	root.CreateAttr("status", string(sale.Status))

	root.CreateElement("Date").SetText(sale.SaleDate.Format("2006-01-02"))

	customer := root.CreateElement("Customer")
	customer.CreateAttr("id", sale.CustomerID)
	customer.CreateElement("Name").SetText(sale.CustomerName)

	items := root.CreateElement("Items")
	for _, it := range sale.Items {
		item := items.CreateElement("Item")
		item.CreateAttr("productId", it.ProductID)
		item.CreateElement("Name").SetText(it.ProductName)
		item.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		item.CreateElement("UnitPrice").SetText(it.UnitPrice.StringFixed(2))
		item.CreateElement("Subtotal").SetText(it.Subtotal.StringFixed(2))
	}

	root.CreateElement("Total").SetText(sale.Total.StringFixed(2))
	root.CreateElement("GeneratedAt").SetText(time.Now().UTC().Format(time.RFC3339))

	doc.Indent(2)
	return doc.WriteToBytes()
}
