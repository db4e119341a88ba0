package booking

import (
	"math"

	"github.com/shopspring/decimal"
)

const minorUnitExp = 2

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Pricing holds the flat adjustments added on top of the cart price.
type Pricing struct {
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
}

func NewPricing(tax, shipping decimal.Decimal) (Pricing, error) {
	if tax.IsNegative() || shipping.IsNegative() {
		return Pricing{}, ErrNegativeAmount
	}
	return Pricing{TaxPrice: tax, ShippingPrice: shipping}, nil
}

func (p Pricing) Total(cartPrice decimal.Decimal) (decimal.Decimal, error) {
	if cartPrice.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return cartPrice.Add(p.TaxPrice).Add(p.ShippingPrice), nil
}

// ToMinorUnits converts a major-unit price to the integer amount the gateway
// charges, rounding half up.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}
	minor := amount.Shift(minorUnitExp).Round(0)
	if minor.GreaterThan(maxMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return minor.IntPart(), nil
}

func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -minorUnitExp)
}
