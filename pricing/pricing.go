// Package pricing turns a cart and the current promotion state into frozen
// amounts. It is a pure computation: no database access, no side effects.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
)

// Line is one priced cart position.
type Line struct {
	ItemID          uint            `json:"item_id"`
	ProductID       uint            `json:"product_id"`
	Title           string          `json:"title"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitOriginal    decimal.Decimal `json:"unit_original_price"`
	DiscountPercent int             `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// Quote is the priced view of a whole cart.
type Quote struct {
	Lines         []Line          `json:"lines"`
	OriginalTotal decimal.Decimal `json:"original_total"`
	Total         decimal.Decimal `json:"total"`
}

// QuoteCart prices every cart item against the promotions loaded on its
// product. Unit prices are rounded (half to even, two decimals) before the
// quantity multiplication, so a line subtotal is always unit price x qty.
// Expects each item's Product and Product.Sales to be loaded.
func QuoteCart(items []models.CartItem, policy catalog.SalePolicy) Quote {
	q := Quote{
		Lines:         make([]Line, 0, len(items)),
		OriginalTotal: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, item := range items {
		p := item.Product
		qty := decimal.NewFromInt(int64(item.Quantity))

		percent := 0
		if sale := catalog.ActiveSale(&p, policy); sale != nil && sale.DiscountPercent > 0 {
			percent = sale.DiscountPercent
		}
		unit := catalog.SalePrice(p.Price, percent)

		line := Line{
			ItemID:          item.ID,
			ProductID:       p.ID,
			Title:           p.Title,
			Quantity:        item.Quantity,
			UnitPrice:       unit,
			UnitOriginal:    p.Price,
			DiscountPercent: percent,
			Subtotal:        unit.Mul(qty),
		}
		q.Lines = append(q.Lines, line)
		q.OriginalTotal = q.OriginalTotal.Add(p.Price.Mul(qty))
		q.Total = q.Total.Add(line.Subtotal)
	}
	return q
}
