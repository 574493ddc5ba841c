package cart_service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

var ErrorCouponInvalid = errors.New("coupon invalid")
var ErrorCouponExpired = errors.New("coupon expired")
var ErrorCouponMinBasket = errors.New("basket below coupon minimum")
var ErrorCouponAlreadyApplied = errors.New("coupon already applied")
var ErrorItemNotFound = errors.New("cart item not found")
var ErrorQuantityInvalid = errors.New("quantity must be positive")

// ICartService owns the pre-order basket of each buyer. Every mutation
// recomputes the invoice, including re-validation of an applied coupon, so
// the discount a buyer sees can never be stale.
type ICartService interface {
	// GetCart returns the buyer's cart through the future, an empty cart
	// when the buyer has none.
	GetCart(ctx context.Context, buyerId uint64) future.IFuture

	AddItem(ctx context.Context, buyerId, vendorId uint64, item entities.CartItem) future.IFuture

	UpdateQuantity(ctx context.Context, buyerId uint64, inventoryId string, quantity int32) future.IFuture

	RemoveItem(ctx context.Context, buyerId uint64, inventoryId string) future.IFuture

	// ApplyCoupon validates the code against the coupon store and binds it
	// to the cart. The cart is untouched on any validation failure.
	ApplyCoupon(ctx context.Context, buyerId uint64, code string) future.IFuture

	// RemoveCoupon is idempotent; removing an absent coupon succeeds.
	RemoveCoupon(ctx context.Context, buyerId uint64) future.IFuture

	// Clear drops the cart entirely, used after successful placement.
	Clear(ctx context.Context, buyerId uint64) future.IFuture
}
