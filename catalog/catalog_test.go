package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/4vald/Shop-Project-EKEB/models"
)

func product(price string, sales ...models.Sale) models.Product {
	return models.Product{
		ID:    1,
		Title: "Test product",
		Price: decimal.RequireFromString(price),
		Sales: sales,
	}
}

func TestDiscountedPriceWithoutSale(t *testing.T) {
	p := product("49.99")
	assert.True(t, p.Price.Equal(DiscountedPrice(&p, SalePolicyFirst)))
}

func TestDiscountedPriceWithSale(t *testing.T) {
	p := product("1000", models.Sale{ID: 1, DiscountPercent: 20})
	got := DiscountedPrice(&p, SalePolicyFirst)
	assert.Equal(t, "800", got.String())
}

func TestSalePriceRoundsHalfToEven(t *testing.T) {
	// 1.25 * 0.50 = 0.625 -> 0.62, 1.75 * 0.50 = 0.875 -> 0.88
	assert.Equal(t, "0.62", SalePrice(decimal.RequireFromString("1.25"), 50).String())
	assert.Equal(t, "0.88", SalePrice(decimal.RequireFromString("1.75"), 50).String())
	// 10.01 * 0.85 = 8.5085 -> 8.51
	assert.Equal(t, "8.51", SalePrice(decimal.RequireFromString("10.01"), 15).String())
}

func TestSalePriceNeverExceedsOriginal(t *testing.T) {
	price := decimal.RequireFromString("10.00")
	for _, percent := range []int{-5, 0, 1, 50, 99, 100} {
		got := SalePrice(price, percent)
		assert.True(t, got.LessThanOrEqual(price), "discount %d gave %s", percent, got)
	}
}

func TestActiveSaleNilWhenNotOnSale(t *testing.T) {
	p := product("10.00")
	assert.Nil(t, ActiveSale(&p, SalePolicyFirst))
}

func TestActiveSaleTieBreakPolicies(t *testing.T) {
	first := models.Sale{ID: 1, DiscountPercent: 10}
	best := models.Sale{ID: 2, DiscountPercent: 30}
	newest := models.Sale{ID: 3, DiscountPercent: 20}
	p := product("100", newest, first, best)

	assert.Equal(t, uint(1), ActiveSale(&p, SalePolicyFirst).ID)
	assert.Equal(t, uint(2), ActiveSale(&p, SalePolicyBest).ID)
	assert.Equal(t, uint(3), ActiveSale(&p, SalePolicyNewest).ID)
}

func TestParseSalePolicyFallsBackToFirst(t *testing.T) {
	assert.Equal(t, SalePolicyFirst, ParseSalePolicy(""))
	assert.Equal(t, SalePolicyFirst, ParseSalePolicy("bogus"))
	assert.Equal(t, SalePolicyBest, ParseSalePolicy("best"))
	assert.Equal(t, SalePolicyNewest, ParseSalePolicy("newest"))
}
