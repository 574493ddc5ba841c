package cart_service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cart_repository "github.com/bazario/fulfillment-service/domain/models/repository/cart"
	coupon_repository "github.com/bazario/fulfillment-service/domain/models/repository/coupon"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	"github.com/bazario/fulfillment-service/infrastructure/utils/calculate"
)

const lockStripes = 64

// Cart mutations for the same buyer are serialized through striped locks,
// the same way the flow manager serializes order transitions. Without
// them two concurrent read-modify-write cycles against the cart store
// could commit a discount computed for a basket that no longer exists.
type iCartServiceImpl struct {
	cartRepository   cart_repository.ICartRepository
	couponRepository coupon_repository.ICouponRepository
	calculator       calculate.IPricingCalculator
	logger           *zap.SugaredLogger
	locks            [lockStripes]sync.Mutex
}

func NewCartService(cartRepository cart_repository.ICartRepository,
	couponRepository coupon_repository.ICouponRepository,
	calculator calculate.IPricingCalculator,
	logger *zap.SugaredLogger) ICartService {
	return &iCartServiceImpl{
		cartRepository:   cartRepository,
		couponRepository: couponRepository,
		calculator:       calculator,
		logger:           logger,
	}
}

func (service *iCartServiceImpl) GetCart(ctx context.Context, buyerId uint64) future.IFuture {
	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		service.logger.Errorw("load cart failed", "fn", "GetCart", "bid", buyerId, "error", err)
		return future.Factory().SetCapacity(1).
			SetError(future.InternalError, "Unknown Error", err).
			BuildAndSend()
	}
	if cart == nil {
		cart = &entities.Cart{BuyerId: buyerId, Items: []*entities.CartItem{}}
	}
	return future.Factory().SetCapacity(1).SetData(cart).BuildAndSend()
}

func (service *iCartServiceImpl) AddItem(ctx context.Context, buyerId, vendorId uint64, item entities.CartItem) future.IFuture {
	if item.Quantity <= 0 {
		return future.Factory().SetCapacity(1).
			SetError(future.ValidationError, "Quantity Invalid", ErrorQuantityInvalid).
			BuildAndSend()
	}

	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		return service.internalError(ctx, "AddItem", buyerId, err)
	}
	if cart == nil {
		cart = &entities.Cart{BuyerId: buyerId, VendorId: vendorId, Items: []*entities.CartItem{}}
	}

	if existing := cart.FindItem(item.InventoryId); existing != nil {
		existing.Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, &item)
	}

	return service.recomputeAndSave(ctx, cart)
}

func (service *iCartServiceImpl) UpdateQuantity(ctx context.Context, buyerId uint64, inventoryId string, quantity int32) future.IFuture {
	if quantity <= 0 {
		return future.Factory().SetCapacity(1).
			SetError(future.ValidationError, "Quantity Invalid", ErrorQuantityInvalid).
			BuildAndSend()
	}

	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		return service.internalError(ctx, "UpdateQuantity", buyerId, err)
	}
	if cart == nil || cart.FindItem(inventoryId) == nil {
		return future.Factory().SetCapacity(1).
			SetError(future.NotFound, "Item Not Found", ErrorItemNotFound).
			BuildAndSend()
	}

	cart.FindItem(inventoryId).Quantity = quantity
	return service.recomputeAndSave(ctx, cart)
}

func (service *iCartServiceImpl) RemoveItem(ctx context.Context, buyerId uint64, inventoryId string) future.IFuture {
	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		return service.internalError(ctx, "RemoveItem", buyerId, err)
	}
	if cart == nil || cart.FindItem(inventoryId) == nil {
		return future.Factory().SetCapacity(1).
			SetError(future.NotFound, "Item Not Found", ErrorItemNotFound).
			BuildAndSend()
	}

	items := make([]*entities.CartItem, 0, len(cart.Items)-1)
	for _, cartItem := range cart.Items {
		if cartItem.InventoryId != inventoryId {
			items = append(items, cartItem)
		}
	}
	cart.Items = items

	return service.recomputeAndSave(ctx, cart)
}

func (service *iCartServiceImpl) ApplyCoupon(ctx context.Context, buyerId uint64, code string) future.IFuture {
	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		return service.internalError(ctx, "ApplyCoupon", buyerId, err)
	}
	if cart == nil || cart.IsEmpty() {
		return future.Factory().SetCapacity(1).
			SetError(future.ValidationError, "Cart Empty", ErrorCouponInvalid).
			BuildAndSend()
	}

	if cart.Coupon != nil && cart.Coupon.Code == code {
		return future.Factory().SetCapacity(1).
			SetError(future.Conflict, "Coupon Already Applied", ErrorCouponAlreadyApplied).
			BuildAndSend()
	}

	coupon, err := service.couponRepository.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, coupon_repository.ErrorCouponNotFound) {
			return future.Factory().SetCapacity(1).
				SetError(future.ValidationError, "Coupon Invalid", ErrorCouponInvalid).
				BuildAndSend()
		}
		return service.internalError(ctx, "ApplyCoupon", buyerId, err)
	}

	applied, validationFuture := service.bindCoupon(ctx, cart, coupon)
	if validationFuture != nil {
		return validationFuture
	}
	cart.Coupon = applied

	return service.recomputeAndSave(ctx, cart)
}

func (service *iCartServiceImpl) RemoveCoupon(ctx context.Context, buyerId uint64) future.IFuture {
	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	cart, err := service.cartRepository.FindByBuyerId(ctx, buyerId)
	if err != nil {
		return service.internalError(ctx, "RemoveCoupon", buyerId, err)
	}
	if cart == nil || cart.Coupon == nil {
		if cart == nil {
			cart = &entities.Cart{BuyerId: buyerId, Items: []*entities.CartItem{}}
		}
		return future.Factory().SetCapacity(1).SetData(cart).BuildAndSend()
	}

	cart.Coupon = nil
	return service.recomputeAndSave(ctx, cart)
}

func (service *iCartServiceImpl) Clear(ctx context.Context, buyerId uint64) future.IFuture {
	lock := service.lockOf(buyerId)
	lock.Lock()
	defer lock.Unlock()

	if err := service.cartRepository.DeleteByBuyerId(ctx, buyerId); err != nil {
		return service.internalError(ctx, "Clear", buyerId, err)
	}
	return future.Factory().SetCapacity(1).SetData(struct{}{}).BuildAndSend()
}

// bindCoupon validates the coupon against the cart and computes the
// AppliedCoupon binding. A non-nil future is a validation failure.
func (service *iCartServiceImpl) bindCoupon(ctx context.Context, cart *entities.Cart, coupon *entities.Coupon) (*entities.AppliedCoupon, future.IFuture) {
	now := time.Now().UTC()
	if !coupon.Enabled || now.Before(coupon.StartDate) {
		return nil, future.Factory().SetCapacity(1).
			SetError(future.ValidationError, "Coupon Invalid", ErrorCouponInvalid).
			BuildAndSend()
	}
	if !now.Before(coupon.EndDate) {
		return nil, future.Factory().SetCapacity(1).
			SetError(future.NotAccepted, "Coupon Expired", ErrorCouponExpired).
			BuildAndSend()
	}

	subtotal := service.subtotal(cart)
	if coupon.MinBasketValue.Amount != "" {
		belowMinimum, err := lessThan(subtotal, coupon.MinBasketValue.Amount)
		if err != nil {
			return nil, service.internalError(ctx, "bindCoupon", cart.BuyerId, err)
		}
		if belowMinimum {
			return nil, future.Factory().SetCapacity(1).
				SetError(future.ValidationError, "Basket Below Coupon Minimum", ErrorCouponMinBasket).
				BuildAndSend()
		}
	}

	discount, err := service.calculator.CouponDiscount(ctx, coupon, subtotal)
	if err != nil {
		return nil, service.internalError(ctx, "bindCoupon", cart.BuyerId, err)
	}

	return &entities.AppliedCoupon{
		Code:      coupon.Code,
		Type:      coupon.Type,
		Percent:   coupon.Percent,
		Price:     &entities.Money{Amount: discount, Currency: coupon.Value.Currency},
		AppliedAt: &now,
	}, nil
}

// recomputeAndSave re-validates any applied coupon against the mutated
// cart, recomputes the invoice and persists. A coupon that no longer
// validates is silently dropped so the stored discount can never go stale.
func (service *iCartServiceImpl) recomputeAndSave(ctx context.Context, cart *entities.Cart) future.IFuture {
	if cart.Coupon != nil {
		coupon, err := service.couponRepository.FindByCode(ctx, cart.Coupon.Code)
		if err != nil {
			if !errors.Is(err, coupon_repository.ErrorCouponNotFound) {
				return service.internalError(ctx, "recomputeAndSave", cart.BuyerId, err)
			}
			cart.Coupon = nil
		} else if applied, invalidFuture := service.bindCoupon(ctx, cart, coupon); invalidFuture != nil {
			service.logger.Infow("coupon dropped on recompute",
				"fn", "recomputeAndSave", "bid", cart.BuyerId, "coupon", cart.Coupon.Code)
			cart.Coupon = nil
		} else {
			cart.Coupon = applied
		}
	}

	if err := service.calculator.CartCalc(ctx, cart); err != nil {
		return service.internalError(ctx, "recomputeAndSave", cart.BuyerId, err)
	}

	savedCart, err := service.cartRepository.Save(ctx, *cart)
	if err != nil {
		return service.internalError(ctx, "recomputeAndSave", cart.BuyerId, err)
	}
	return future.Factory().SetCapacity(1).SetData(savedCart).BuildAndSend()
}

func (service *iCartServiceImpl) subtotal(cart *entities.Cart) string {
	total := decimal.Zero
	for _, item := range cart.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice.Amount)
		if err != nil {
			continue
		}
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.String()
}

func lessThan(left, right string) (bool, error) {
	leftAmount, err := decimal.NewFromString(left)
	if err != nil {
		return false, errors.Wrap(err, "invalid amount")
	}
	rightAmount, err := decimal.NewFromString(right)
	if err != nil {
		return false, errors.Wrap(err, "invalid amount")
	}
	return leftAmount.LessThan(rightAmount), nil
}

func (service *iCartServiceImpl) lockOf(buyerId uint64) *sync.Mutex {
	return &service.locks[buyerId%lockStripes]
}

func (service *iCartServiceImpl) internalError(ctx context.Context, fn string, buyerId uint64, err error) future.IFuture {
	service.logger.Errorw("cart operation failed", "fn", fn, "bid", buyerId, "error", err)
	return future.Factory().SetCapacity(1).
		SetError(future.InternalError, "Unknown Error", err).
		BuildAndSend()
}
