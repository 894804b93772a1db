package invoice

import (
	"errors"
	"fmt"
	"io"
	"time"

	"abinexis-storefront/internal/address"
	"abinexis-storefront/internal/pricing"

	"github.com/jung-kurt/gofpdf"
)

var ErrNoItems = errors.New("invoice has no line items")

// Invoice is everything needed to render a downloadable order invoice.
// Totals come through the same aggregator the cart uses, so the document
// always matches what the user saw at checkout.
type Invoice struct {
	Number    string
	OrderID   string
	IssuedAt  time.Time
	BuyerName string
	Address   address.Address
	Items     []pricing.LineItem
	Discount  pricing.Discount
}

// Render writes the invoice as a PDF.
func (inv *Invoice) Render(w io.Writer) error {
	if len(inv.Items) == 0 {
		return ErrNoItems
	}

	number := inv.Number
	if number == "" {
		number = Number()
	}
	issued := inv.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}

	summary := pricing.Aggregate(inv.Items, inv.Discount)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Invoice")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice No: %s", number))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Order ID: %s", inv.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", issued.Format("Jan 2, 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Deliver To")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	if inv.BuyerName != "" {
		pdf.Cell(0, 5, inv.BuyerName)
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, inv.Address.Address)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", inv.Address.City, inv.Address.State, inv.Address.ZipCode))
	pdf.Ln(5)
	if inv.Address.Phone != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Phone: %s", inv.Address.Phone))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		if !item.InStock {
			continue
		}
		pdf.CellFormat(80, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
	}

	totalRow("Subtotal", money(summary.Subtotal), false)
	if summary.Savings > 0 {
		totalRow("You Saved", money(summary.Savings), false)
	}
	if summary.Discount > 0 {
		totalRow("Discount", "-"+money(summary.Discount), false)
	}
	totalRow("Shipping", money(summary.ShippingCost), false)
	totalRow("Total", money(summary.Total), true)

	return pdf.Output(w)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
