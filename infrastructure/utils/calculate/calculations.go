package calculate

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

// PricingConfig carries the tenant-level pricing knobs. Amounts are decimal
// strings in the platform currency.
type PricingConfig struct {
	Currency              string
	DeliveryFee           string
	FreeDeliveryThreshold string
	TaxPercent            string
}

// IPricingCalculator recomputes the money fields of a cart from its items
// and applied coupon. Intermediate values are never rounded; only the final
// Money render is fixed to two fractional digits.
type IPricingCalculator interface {
	// CartCalc recomputes the full invoice of the cart in place:
	//   grandTotal = subtotal + deliveryFee - discount + tax
	// with discount capped at subtotal and grandTotal never negative.
	CartCalc(ctx context.Context, cart *entities.Cart) error

	// CouponDiscount computes the discount a coupon yields against the
	// given subtotal without touching the cart.
	CouponDiscount(ctx context.Context, coupon *entities.Coupon, subtotal string) (string, error)
}
