package calculate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

func newCalculator(t *testing.T) IPricingCalculator {
	calculator, err := New(PricingConfig{
		Currency:              "INR",
		DeliveryFee:           "30",
		FreeDeliveryThreshold: "1000",
		TaxPercent:            "0",
	})
	require.Nil(t, err)
	return calculator
}

func buildCart() *entities.Cart {
	return &entities.Cart{
		BuyerId:  1000001,
		VendorId: 2000001,
		Items: []*entities.CartItem{
			{
				InventoryId: "1111-trousers",
				Title:       "trousers",
				UnitPrice:   entities.Money{Amount: "200", Currency: "INR"},
				Quantity:    1,
			},
			{
				InventoryId: "2222-shirt",
				Title:       "shirt",
				UnitPrice:   entities.Money{Amount: "150", Currency: "INR"},
				Quantity:    2,
			},
		},
	}
}

func TestCartCalcWithoutCoupon(t *testing.T) {
	calculator := newCalculator(t)
	cart := buildCart()

	err := calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)

	require.Equal(t, "500.00", cart.Invoice.Subtotal.Amount)
	require.Equal(t, "30.00", cart.Invoice.DeliveryFee.Amount)
	require.Equal(t, "0.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "530.00", cart.Invoice.GrandTotal.Amount)
}

func TestCartCalcFixedCoupon(t *testing.T) {
	calculator := newCalculator(t)
	cart := buildCart()

	coupon := &entities.Coupon{
		Code:  "SAVE50",
		Type:  entities.CouponTypeFixed,
		Value: entities.Money{Amount: "50", Currency: "INR"},
	}

	discount, err := calculator.CouponDiscount(context.Background(), coupon, "500")
	require.Nil(t, err)
	require.Equal(t, "50.00", discount)

	appliedAt := time.Now().UTC()
	cart.Coupon = &entities.AppliedCoupon{
		Code:      coupon.Code,
		Type:      coupon.Type,
		Price:     &entities.Money{Amount: discount, Currency: "INR"},
		AppliedAt: &appliedAt,
	}

	err = calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)
	require.Equal(t, "480.00", cart.Invoice.GrandTotal.Amount)

	// removing the coupon restores the undiscounted total
	cart.Coupon = nil
	err = calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)
	require.Equal(t, "0.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "530.00", cart.Invoice.GrandTotal.Amount)
}

func TestCouponDiscountPercentCapped(t *testing.T) {
	calculator := newCalculator(t)

	coupon := &entities.Coupon{
		Code:        "TENOFF",
		Type:        entities.CouponTypePercent,
		Percent:     10,
		MaxDiscount: entities.Money{Amount: "40", Currency: "INR"},
	}

	discount, err := calculator.CouponDiscount(context.Background(), coupon, "300")
	require.Nil(t, err)
	require.Equal(t, "30.00", discount)

	discount, err = calculator.CouponDiscount(context.Background(), coupon, "500")
	require.Nil(t, err)
	require.Equal(t, "40.00", discount)
}

func TestCouponDiscountNeverExceedsSubtotal(t *testing.T) {
	calculator := newCalculator(t)

	coupon := &entities.Coupon{
		Code:  "BIGSAVE",
		Type:  entities.CouponTypeFixed,
		Value: entities.Money{Amount: "900", Currency: "INR"},
	}

	discount, err := calculator.CouponDiscount(context.Background(), coupon, "500")
	require.Nil(t, err)
	require.Equal(t, "500.00", discount)
}

func TestCartCalcGrandTotalNeverNegative(t *testing.T) {
	calculator := newCalculator(t)
	cart := buildCart()
	cart.Coupon = &entities.AppliedCoupon{
		Code:  "BIGSAVE",
		Type:  entities.CouponTypeFixed,
		Price: &entities.Money{Amount: "900", Currency: "INR"},
	}

	err := calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)
	require.Equal(t, "500.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "30.00", cart.Invoice.GrandTotal.Amount)
}

func TestCartCalcFreeDeliveryAboveThreshold(t *testing.T) {
	calculator := newCalculator(t)
	cart := buildCart()
	cart.Items = append(cart.Items, &entities.CartItem{
		InventoryId: "3333-jacket",
		Title:       "jacket",
		UnitPrice:   entities.Money{Amount: "600", Currency: "INR"},
		Quantity:    1,
	})

	err := calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)
	require.Equal(t, "1100.00", cart.Invoice.Subtotal.Amount)
	require.Equal(t, "0.00", cart.Invoice.DeliveryFee.Amount)
	require.Equal(t, "1100.00", cart.Invoice.GrandTotal.Amount)
}

func TestCartCalcTaxAppliedAfterDiscount(t *testing.T) {
	calculator, err := New(PricingConfig{
		Currency:              "INR",
		DeliveryFee:           "30",
		FreeDeliveryThreshold: "1000",
		TaxPercent:            "5",
	})
	require.Nil(t, err)

	cart := buildCart()
	cart.Coupon = &entities.AppliedCoupon{
		Code:  "SAVE100",
		Type:  entities.CouponTypeFixed,
		Price: &entities.Money{Amount: "100", Currency: "INR"},
	}

	err = calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)

	// (500 - 100) * 5% = 20
	require.Equal(t, "20.00", cart.Invoice.Tax.Amount)
	require.Equal(t, "450.00", cart.Invoice.GrandTotal.Amount)
}

func TestCartCalcEmptyCart(t *testing.T) {
	calculator := newCalculator(t)
	cart := &entities.Cart{BuyerId: 1000001}

	err := calculator.CartCalc(context.Background(), cart)
	require.Nil(t, err)
	require.Equal(t, "0.00", cart.Invoice.Subtotal.Amount)
	require.Equal(t, "0.00", cart.Invoice.DeliveryFee.Amount)
	require.Equal(t, "0.00", cart.Invoice.GrandTotal.Amount)
}
