package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
)

func cartItem(id uint, price string, qty int, sales ...models.Sale) models.CartItem {
	return models.CartItem{
		ID:        id,
		ProductID: id,
		Quantity:  qty,
		Product: models.Product{
			ID:    id,
			Title: "Product",
			Price: decimal.RequireFromString(price),
			Sales: sales,
		},
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	q := QuoteCart(nil, catalog.SalePolicyFirst)
	assert.Empty(t, q.Lines)
	assert.True(t, q.Total.IsZero())
	assert.True(t, q.OriginalTotal.IsZero())
}

func TestQuoteDiscountedLine(t *testing.T) {
	// Product priced 1000 under a 20% sale, quantity 2.
	items := []models.CartItem{
		cartItem(1, "1000", 2, models.Sale{ID: 1, DiscountPercent: 20}),
	}
	q := QuoteCart(items, catalog.SalePolicyFirst)

	require.Len(t, q.Lines, 1)
	line := q.Lines[0]
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "800", line.UnitPrice.String())
	assert.Equal(t, "1000", line.UnitOriginal.String())
	assert.Equal(t, 20, line.DiscountPercent)
	assert.Equal(t, "1600", line.Subtotal.String())
	assert.Equal(t, "1600", q.Total.String())
	assert.Equal(t, "2000", q.OriginalTotal.String())
}

func TestQuoteMixedCart(t *testing.T) {
	items := []models.CartItem{
		cartItem(1, "10.00", 3),
		cartItem(2, "20.00", 1, models.Sale{ID: 1, DiscountPercent: 25}),
	}
	q := QuoteCart(items, catalog.SalePolicyFirst)

	require.Len(t, q.Lines, 2)
	assert.Equal(t, "10", q.Lines[0].UnitPrice.String())
	assert.Equal(t, 0, q.Lines[0].DiscountPercent)
	assert.Equal(t, "15", q.Lines[1].UnitPrice.String())

	assert.Equal(t, "45", q.Total.String())
	assert.Equal(t, "50", q.OriginalTotal.String())
}

func TestQuoteSubtotalIsUnitTimesQuantity(t *testing.T) {
	// The unit price rounds before the quantity multiplication, so a line
	// subtotal is always unit price x qty.
	items := []models.CartItem{
		cartItem(1, "10.01", 3, models.Sale{ID: 1, DiscountPercent: 15}),
	}
	q := QuoteCart(items, catalog.SalePolicyFirst)

	line := q.Lines[0]
	assert.True(t, line.Subtotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(3))))
}

func TestQuoteUsesPolicy(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, DiscountPercent: 10},
		{ID: 2, DiscountPercent: 50},
	}
	items := []models.CartItem{cartItem(1, "100", 1, sales...)}

	assert.Equal(t, "90", QuoteCart(items, catalog.SalePolicyFirst).Total.String())
	assert.Equal(t, "50", QuoteCart(items, catalog.SalePolicyBest).Total.String())
}
