package calculate

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

var ErrorCouponTypeUnknown = errors.New("unknown coupon type")

type pricingCalculatorImpl struct {
	currency              string
	deliveryFee           decimal.Decimal
	freeDeliveryThreshold decimal.Decimal
	taxPercent            decimal.Decimal
}

func New(config PricingConfig) (IPricingCalculator, error) {
	deliveryFee, err := decimal.NewFromString(config.DeliveryFee)
	if err != nil {
		return nil, errors.Wrap(err, "invalid delivery fee")
	}

	freeDeliveryThreshold, err := decimal.NewFromString(config.FreeDeliveryThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "invalid free delivery threshold")
	}

	taxPercent, err := decimal.NewFromString(config.TaxPercent)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tax percent")
	}

	return &pricingCalculatorImpl{
		currency:              config.Currency,
		deliveryFee:           deliveryFee,
		freeDeliveryThreshold: freeDeliveryThreshold,
		taxPercent:            taxPercent,
	}, nil
}

func (calc pricingCalculatorImpl) CartCalc(ctx context.Context, cart *entities.Cart) error {
	subtotal := decimal.Zero
	for i := 0; i < len(cart.Items); i++ {
		unitPrice, err := decimal.NewFromString(cart.Items[i].UnitPrice.Amount)
		if err != nil {
			return errors.Wrapf(err, "invalid unit price of inventory %s", cart.Items[i].InventoryId)
		}
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(cart.Items[i].Quantity))))
	}

	deliveryFee := decimal.Zero
	if !cart.IsEmpty() && subtotal.LessThan(calc.freeDeliveryThreshold) {
		deliveryFee = calc.deliveryFee
	}

	discount := decimal.Zero
	if cart.Coupon != nil && cart.Coupon.Price != nil {
		couponPrice, err := decimal.NewFromString(cart.Coupon.Price.Amount)
		if err != nil {
			return errors.Wrapf(err, "invalid discount of coupon %s", cart.Coupon.Code)
		}
		discount = couponPrice
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	tax := subtotal.Sub(discount).Mul(calc.taxPercent).Div(decimal.NewFromInt(100))

	grandTotal := subtotal.Add(deliveryFee).Sub(discount).Add(tax)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	cart.Invoice.Subtotal = calc.money(subtotal)
	cart.Invoice.DeliveryFee = calc.money(deliveryFee)
	cart.Invoice.Discount = calc.money(discount)
	cart.Invoice.Tax = calc.money(tax)
	cart.Invoice.GrandTotal = calc.money(grandTotal)
	cart.Invoice.Coupon = cart.Coupon
	return nil
}

func (calc pricingCalculatorImpl) CouponDiscount(ctx context.Context, coupon *entities.Coupon, subtotal string) (string, error) {
	subtotalAmount, err := decimal.NewFromString(subtotal)
	if err != nil {
		return "", errors.Wrap(err, "invalid subtotal")
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case entities.CouponTypePercent:
		discount = subtotalAmount.Mul(decimal.NewFromFloat(coupon.Percent)).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount.Amount != "" {
			maxDiscount, err := decimal.NewFromString(coupon.MaxDiscount.Amount)
			if err != nil {
				return "", errors.Wrapf(err, "invalid max discount of coupon %s", coupon.Code)
			}
			if maxDiscount.IsPositive() && discount.GreaterThan(maxDiscount) {
				discount = maxDiscount
			}
		}
	case entities.CouponTypeFixed:
		discount, err = decimal.NewFromString(coupon.Value.Amount)
		if err != nil {
			return "", errors.Wrapf(err, "invalid value of coupon %s", coupon.Code)
		}
	default:
		return "", ErrorCouponTypeUnknown
	}

	if discount.GreaterThan(subtotalAmount) {
		discount = subtotalAmount
	}

	return discount.StringFixed(2), nil
}

func (calc pricingCalculatorImpl) money(amount decimal.Decimal) entities.Money {
	return entities.Money{
		Amount:   amount.StringFixed(2),
		Currency: calc.currency,
	}
}
