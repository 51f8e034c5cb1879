// Package catalog resolves which sale applies to a product and what the
// product costs under it.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/4vald/Shop-Project-EKEB/models"
)

// SalePolicy decides the authoritative sale when a product belongs to more
// than one. The original storefront picked an arbitrary first one; here the
// tie-break is an explicit, configurable policy.
type SalePolicy string

const (
	// SalePolicyFirst picks the earliest-created sale (lowest id). This is
	// the default and documents the original behavior as a simplification,
	// not a "best discount" guarantee.
	SalePolicyFirst SalePolicy = "first"
	// SalePolicyBest picks the highest discount percent.
	SalePolicyBest SalePolicy = "best"
	// SalePolicyNewest picks the most recently created sale (highest id).
	SalePolicyNewest SalePolicy = "newest"
)

// ParseSalePolicy falls back to SalePolicyFirst for unknown values.
func ParseSalePolicy(s string) SalePolicy {
	switch SalePolicy(s) {
	case SalePolicyBest:
		return SalePolicyBest
	case SalePolicyNewest:
		return SalePolicyNewest
	default:
		return SalePolicyFirst
	}
}

// ActiveSale resolves the sale applied to the product, or nil when it is not
// on sale. Expects product.Sales to be loaded.
func ActiveSale(p *models.Product, policy SalePolicy) *models.Sale {
	if len(p.Sales) == 0 {
		return nil
	}
	pick := &p.Sales[0]
	for i := 1; i < len(p.Sales); i++ {
		s := &p.Sales[i]
		switch policy {
		case SalePolicyBest:
			if s.DiscountPercent > pick.DiscountPercent {
				pick = s
			}
		case SalePolicyNewest:
			if s.ID > pick.ID {
				pick = s
			}
		default:
			if s.ID < pick.ID {
				pick = s
			}
		}
	}
	return pick
}

// SalePrice applies a percentage discount to a unit price, rounding half to
// even at two decimal places. The result never exceeds the original price:
// negative discounts are treated as 0.
func SalePrice(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return price
	}
	factor := decimal.NewFromInt(100 - int64(discountPercent)).
		Div(decimal.NewFromInt(100))
	return price.Mul(factor).RoundBank(2)
}

// DiscountedPrice is the product's current price under its resolved sale,
// or the plain price when no sale applies.
func DiscountedPrice(p *models.Product, policy SalePolicy) decimal.Decimal {
	sale := ActiveSale(p, policy)
	if sale == nil {
		return p.Price
	}
	return SalePrice(p.Price, sale.DiscountPercent)
}
