package pricing

// LineItem is a single cart or order line as assembled from the backend's
// cart and price-detail responses. Prices are per unit.
type LineItem struct {
	ID            string
	Name          string
	Price         float64
	OriginalPrice float64
	Quantity      int
	ShippingCost  float64
	InStock       bool
	Filters       map[string]string
}

// PriceSummary is derived from the current line items on every call and never
// stored: total == subtotal - discount + shipping.
type PriceSummary struct {
	Subtotal     float64
	Savings      float64
	ShippingCost float64
	Discount     float64
	Total        float64
}

// Discount computes an order-level discount from the in-stock subtotal.
// The storefront has no live promotion scheme yet; the term exists in the
// total formula as an extension point rather than a hardcoded zero.
type Discount interface {
	Amount(subtotal float64) float64
}

// NoDiscount is the default strategy.
type NoDiscount struct{}

func (NoDiscount) Amount(float64) float64 { return 0 }

// Aggregate computes the order totals over the in-stock lines. Out-of-stock
// lines stay visible in the cart but contribute nothing to any figure.
//
// Shipping is summed over distinct per-line costs, not per line: lines that
// share a shipping cost are assumed to share a shipment. Two different
// products that happen to carry the same numeric cost are therefore billed
// once. Intentional policy, pinned by tests.
func Aggregate(items []LineItem, discount Discount) PriceSummary {
	if discount == nil {
		discount = NoDiscount{}
	}

	var summary PriceSummary
	seenShipping := make(map[float64]struct{})

	for _, item := range items {
		if !item.InStock {
			continue
		}

		qty := float64(item.Quantity)
		summary.Subtotal += item.Price * qty
		summary.Savings += (item.OriginalPrice - item.Price) * qty

		if _, seen := seenShipping[item.ShippingCost]; !seen {
			seenShipping[item.ShippingCost] = struct{}{}
			summary.ShippingCost += item.ShippingCost
		}
	}

	summary.Discount = discount.Amount(summary.Subtotal)
	summary.Total = summary.Subtotal - summary.Discount + summary.ShippingCost

	return summary
}

// AllInStock reports whether every line item can currently be purchased.
func AllInStock(items []LineItem) bool {
	for _, item := range items {
		if !item.InStock {
			return false
		}
	}
	return true
}
