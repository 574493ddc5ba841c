package cart_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cart_repository "github.com/bazario/fulfillment-service/domain/models/repository/cart"
	coupon_repository "github.com/bazario/fulfillment-service/domain/models/repository/coupon"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	"github.com/bazario/fulfillment-service/infrastructure/utils/calculate"
)

type inMemCartRepository struct {
	carts map[uint64]*entities.Cart
}

func (repo *inMemCartRepository) Save(ctx context.Context, cart entities.Cart) (*entities.Cart, error) {
	repo.carts[cart.BuyerId] = &cart
	return &cart, nil
}

func (repo *inMemCartRepository) FindByBuyerId(ctx context.Context, buyerId uint64) (*entities.Cart, error) {
	return repo.carts[buyerId], nil
}

func (repo *inMemCartRepository) DeleteByBuyerId(ctx context.Context, buyerId uint64) error {
	delete(repo.carts, buyerId)
	return nil
}

type inMemCouponRepository struct {
	coupons map[string]*entities.Coupon
}

func (repo *inMemCouponRepository) Save(ctx context.Context, coupon entities.Coupon) (*entities.Coupon, error) {
	repo.coupons[coupon.Code] = &coupon
	return &coupon, nil
}

func (repo *inMemCouponRepository) FindByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	coupon, ok := repo.coupons[code]
	if !ok {
		return nil, coupon_repository.ErrorCouponNotFound
	}
	return coupon, nil
}

func (repo *inMemCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, ok := repo.coupons[code]
	return ok, nil
}

var _ cart_repository.ICartRepository = &inMemCartRepository{}
var _ coupon_repository.ICouponRepository = &inMemCouponRepository{}

func newCartService(t *testing.T) (ICartService, *inMemCouponRepository) {
	calculator, err := calculate.New(calculate.PricingConfig{
		Currency:              "INR",
		DeliveryFee:           "30",
		FreeDeliveryThreshold: "1000",
		TaxPercent:            "0",
	})
	require.Nil(t, err)

	coupons := &inMemCouponRepository{coupons: make(map[string]*entities.Coupon)}
	service := NewCartService(
		&inMemCartRepository{carts: make(map[uint64]*entities.Cart)},
		coupons, calculator, zap.NewNop().Sugar())
	return service, coupons
}

func save50() entities.Coupon {
	return entities.Coupon{
		Code:      "SAVE50",
		Type:      entities.CouponTypeFixed,
		Value:     entities.Money{Amount: "50", Currency: "INR"},
		StartDate: time.Now().UTC().Add(-time.Hour),
		EndDate:   time.Now().UTC().Add(time.Hour),
		Enabled:   true,
	}
}

func addItems(t *testing.T, service ICartService, buyerId uint64) {
	iFuture := service.AddItem(context.Background(), buyerId, 2000001, entities.CartItem{
		InventoryId: "1111-trousers",
		UnitPrice:   entities.Money{Amount: "200", Currency: "INR"},
		Quantity:    1,
	})
	require.Nil(t, iFuture.Get().Error())

	iFuture = service.AddItem(context.Background(), buyerId, 2000001, entities.CartItem{
		InventoryId: "2222-shirt",
		UnitPrice:   entities.Money{Amount: "150", Currency: "INR"},
		Quantity:    2,
	})
	require.Nil(t, iFuture.Get().Error())
}

func TestApplyCouponAndRemove(t *testing.T) {
	service, coupons := newCartService(t)
	_, err := coupons.Save(context.Background(), save50())
	require.Nil(t, err)

	addItems(t, service, 1000001)

	iFuture := service.ApplyCoupon(context.Background(), 1000001, "SAVE50")
	data := iFuture.Get()
	require.Nil(t, data.Error())
	cart := data.Data().(*entities.Cart)
	require.Equal(t, "50.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "480.00", cart.Invoice.GrandTotal.Amount)

	// second apply of the same code fails and leaves the cart untouched
	iFuture = service.ApplyCoupon(context.Background(), 1000001, "SAVE50")
	futureError := iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
	require.ErrorIs(t, futureError.Reason(), ErrorCouponAlreadyApplied)

	iFuture = service.GetCart(context.Background(), 1000001)
	cart = iFuture.Get().Data().(*entities.Cart)
	require.Equal(t, "480.00", cart.Invoice.GrandTotal.Amount)

	iFuture = service.RemoveCoupon(context.Background(), 1000001)
	data = iFuture.Get()
	require.Nil(t, data.Error())
	cart = data.Data().(*entities.Cart)
	require.Equal(t, "0.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "530.00", cart.Invoice.GrandTotal.Amount)

	// removing again still succeeds
	iFuture = service.RemoveCoupon(context.Background(), 1000001)
	require.Nil(t, iFuture.Get().Error())
}

func TestApplyCouponValidation(t *testing.T) {
	service, coupons := newCartService(t)
	addItems(t, service, 1000001)

	iFuture := service.ApplyCoupon(context.Background(), 1000001, "NOPE")
	futureError := iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())
	require.ErrorIs(t, futureError.Reason(), ErrorCouponInvalid)

	expired := save50()
	expired.Code = "OLD50"
	expired.EndDate = time.Now().UTC().Add(-time.Minute)
	_, err := coupons.Save(context.Background(), expired)
	require.Nil(t, err)

	iFuture = service.ApplyCoupon(context.Background(), 1000001, "OLD50")
	futureError = iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.NotAccepted, futureError.Code())
	require.ErrorIs(t, futureError.Reason(), ErrorCouponExpired)

	picky := save50()
	picky.Code = "BIG50"
	picky.MinBasketValue = entities.Money{Amount: "600", Currency: "INR"}
	_, err = coupons.Save(context.Background(), picky)
	require.Nil(t, err)

	iFuture = service.ApplyCoupon(context.Background(), 1000001, "BIG50")
	futureError = iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())
	require.ErrorIs(t, futureError.Reason(), ErrorCouponMinBasket)

	// failed validations never touched the stored cart
	iFuture = service.GetCart(context.Background(), 1000001)
	cart := iFuture.Get().Data().(*entities.Cart)
	require.Nil(t, cart.Invoice.Coupon)
	require.Equal(t, "530.00", cart.Invoice.GrandTotal.Amount)
}

func TestCouponDroppedWhenBasketShrinksBelowMinimum(t *testing.T) {
	service, coupons := newCartService(t)

	coupon := save50()
	coupon.MinBasketValue = entities.Money{Amount: "400", Currency: "INR"}
	_, err := coupons.Save(context.Background(), coupon)
	require.Nil(t, err)

	addItems(t, service, 1000001)

	iFuture := service.ApplyCoupon(context.Background(), 1000001, "SAVE50")
	require.Nil(t, iFuture.Get().Error())

	// dropping the shirts takes the basket to 200, below the 400 minimum
	iFuture = service.RemoveItem(context.Background(), 1000001, "2222-shirt")
	data := iFuture.Get()
	require.Nil(t, data.Error())
	cart := data.Data().(*entities.Cart)
	require.Nil(t, cart.Coupon)
	require.Equal(t, "0.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "230.00", cart.Invoice.GrandTotal.Amount)
}

// slowSaveCartRepository stretches the store write so overlapping
// read-modify-write cycles would interleave without per-buyer locking.
type slowSaveCartRepository struct {
	inner *inMemCartRepository
	delay time.Duration
}

func (repo *slowSaveCartRepository) Save(ctx context.Context, cart entities.Cart) (*entities.Cart, error) {
	time.Sleep(repo.delay)
	return repo.inner.Save(ctx, cart)
}

func (repo *slowSaveCartRepository) FindByBuyerId(ctx context.Context, buyerId uint64) (*entities.Cart, error) {
	return repo.inner.FindByBuyerId(ctx, buyerId)
}

func (repo *slowSaveCartRepository) DeleteByBuyerId(ctx context.Context, buyerId uint64) error {
	return repo.inner.DeleteByBuyerId(ctx, buyerId)
}

var _ cart_repository.ICartRepository = &slowSaveCartRepository{}

func TestConcurrentCouponAndRemovalSerialized(t *testing.T) {
	calculator, err := calculate.New(calculate.PricingConfig{
		Currency:              "INR",
		DeliveryFee:           "30",
		FreeDeliveryThreshold: "1000",
		TaxPercent:            "0",
	})
	require.Nil(t, err)

	coupons := &inMemCouponRepository{coupons: make(map[string]*entities.Coupon)}
	coupon := save50()
	coupon.MinBasketValue = entities.Money{Amount: "400", Currency: "INR"}
	_, err = coupons.Save(context.Background(), coupon)
	require.Nil(t, err)

	slowRepo := &slowSaveCartRepository{
		inner: &inMemCartRepository{carts: make(map[uint64]*entities.Cart)},
		delay: 30 * time.Millisecond,
	}
	service := NewCartService(slowRepo, coupons, calculator, zap.NewNop().Sugar())
	addItems(t, service, 1000001)

	// apply the coupon against the 500 basket while the shirts are being
	// removed; whichever operation wins the lock, the committed cart must
	// never hold a discount its basket no longer qualifies for
	applyDone := make(chan struct{})
	go func() {
		defer close(applyDone)
		service.ApplyCoupon(context.Background(), 1000001, "SAVE50").Get()
	}()
	time.Sleep(10 * time.Millisecond)
	require.Nil(t, service.RemoveItem(context.Background(), 1000001, "2222-shirt").Get().Error())
	<-applyDone

	cart := service.GetCart(context.Background(), 1000001).Get().Data().(*entities.Cart)
	require.Len(t, cart.Items, 1)
	require.Nil(t, cart.Coupon)
	require.Equal(t, "0.00", cart.Invoice.Discount.Amount)
	require.Equal(t, "200.00", cart.Invoice.Subtotal.Amount)
	require.Equal(t, "230.00", cart.Invoice.GrandTotal.Amount)
}

func TestUpdateQuantityRecomputes(t *testing.T) {
	service, _ := newCartService(t)
	addItems(t, service, 1000001)

	iFuture := service.UpdateQuantity(context.Background(), 1000001, "2222-shirt", 4)
	data := iFuture.Get()
	require.Nil(t, data.Error())
	cart := data.Data().(*entities.Cart)
	require.Equal(t, "800.00", cart.Invoice.Subtotal.Amount)

	iFuture = service.UpdateQuantity(context.Background(), 1000001, "9999-missing", 1)
	futureError := iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.NotFound, futureError.Code())

	iFuture = service.UpdateQuantity(context.Background(), 1000001, "2222-shirt", 0)
	futureError = iFuture.Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())
}

func TestClearCart(t *testing.T) {
	service, _ := newCartService(t)
	addItems(t, service, 1000001)

	iFuture := service.Clear(context.Background(), 1000001)
	require.Nil(t, iFuture.Get().Error())

	iFuture = service.GetCart(context.Background(), 1000001)
	cart := iFuture.Get().Data().(*entities.Cart)
	require.True(t, cart.IsEmpty())
}
