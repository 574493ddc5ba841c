package domain

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/configs"
	"github.com/bazario/fulfillment-service/domain/actions"
	buyer_action "github.com/bazario/fulfillment-service/domain/actions/buyer"
	courier_action "github.com/bazario/fulfillment-service/domain/actions/courier"
	system_action "github.com/bazario/fulfillment-service/domain/actions/system"
	vendor_action "github.com/bazario/fulfillment-service/domain/actions/vendor"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	payment_service "github.com/bazario/fulfillment-service/infrastructure/services/payment"
)

type memOrderRepository struct {
	orders map[uint64]*entities.Order
}

func (repo *memOrderRepository) Save(ctx context.Context, order entities.Order) (*entities.Order, error) {
	if order.OrderId == 0 {
		return repo.Insert(ctx, order)
	}
	order.Version++
	stored := order
	repo.orders[order.OrderId] = &stored
	return &order, nil
}

func (repo *memOrderRepository) Insert(ctx context.Context, order entities.Order) (*entities.Order, error) {
	order.OrderId = entities.GenerateOrderId()
	order.OrderNumber = entities.GenerateOrderNumber(order.OrderId)
	for _, item := range order.Items {
		item.ItemId = entities.GenerateOrderId()
	}
	stored := order
	repo.orders[order.OrderId] = &stored
	return &order, nil
}

func (repo *memOrderRepository) FindById(ctx context.Context, orderId uint64) (*entities.Order, error) {
	order, ok := repo.orders[orderId]
	if !ok {
		return nil, errors.Errorf("order %d not found", orderId)
	}
	copied := *order
	return &copied, nil
}

func (repo *memOrderRepository) FindByFilter(ctx context.Context, supplier func() interface{}) ([]*entities.Order, error) {
	return nil, nil
}

func (repo *memOrderRepository) FindByFilterWithPage(ctx context.Context, supplier func() interface{}, page, perPage int64) ([]*entities.Order, int64, error) {
	result := make([]*entities.Order, 0, len(repo.orders))
	for _, order := range repo.orders {
		result = append(result, order)
	}
	return result, int64(len(result)), nil
}

func (repo *memOrderRepository) ExistsById(ctx context.Context, orderId uint64) (bool, error) {
	_, ok := repo.orders[orderId]
	return ok, nil
}

func (repo *memOrderRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(repo.orders)), nil
}

type memCartRepository struct {
	carts map[uint64]*entities.Cart
}

func (repo *memCartRepository) Save(ctx context.Context, cart entities.Cart) (*entities.Cart, error) {
	repo.carts[cart.BuyerId] = &cart
	return &cart, nil
}

func (repo *memCartRepository) FindByBuyerId(ctx context.Context, buyerId uint64) (*entities.Cart, error) {
	return repo.carts[buyerId], nil
}

func (repo *memCartRepository) DeleteByBuyerId(ctx context.Context, buyerId uint64) error {
	delete(repo.carts, buyerId)
	return nil
}

var buyer = events.ActorIdentity{ID: 1000001, Role: actions.Buyer}
var vendor = events.ActorIdentity{ID: 2000001, Role: actions.Vendor}
var courier = events.ActorIdentity{ID: 4000001, Role: actions.Courier}
var system = events.ActorIdentity{ID: 1, Role: actions.System}

func setupGlobals() {
	config := &configs.Config{}
	config.App.MinReasonLength = 10
	config.App.DefaultReturnWindow = 7

	app.Globals.Config = config
	app.Globals.ZapLogger = zap.NewNop()
	app.Globals.Logger = zap.NewNop().Sugar()
	app.Globals.OrderRepository = &memOrderRepository{orders: make(map[uint64]*entities.Order)}
	app.Globals.CartRepository = &memCartRepository{carts: make(map[uint64]*entities.Cart)}
	app.Globals.NotifyService = notify_service.NewNotificationServiceMock()
	app.Globals.PaymentService = payment_service.NewPaymentServiceMock()
}

func placeData(paymentMode string) events.PlaceOrderData {
	return events.PlaceOrderData{
		Cart: &entities.Cart{
			BuyerId:  buyer.ID,
			VendorId: vendor.ID,
			Items: []*entities.CartItem{
				{
					InventoryId:      "1111-trousers",
					Title:            "trousers",
					UnitPrice:        entities.Money{Amount: "200", Currency: "INR"},
					Quantity:         1,
					ReturnEligible:   true,
					ReturnWindowDays: 7,
				},
				{
					InventoryId: "2222-shirt",
					UnitPrice:   entities.Money{Amount: "150", Currency: "INR"},
					Quantity:    2,
				},
			},
			Invoice: entities.Invoice{
				Subtotal:    entities.Money{Amount: "500.00", Currency: "INR"},
				DeliveryFee: entities.Money{Amount: "30.00", Currency: "INR"},
				Discount:    entities.Money{Amount: "0.00", Currency: "INR"},
				Tax:         entities.Money{Amount: "0.00", Currency: "INR"},
				GrandTotal:  entities.Money{Amount: "530.00", Currency: "INR"},
			},
		},
		Address: entities.AddressInfo{
			AddressId: 42,
			Address:   "12 Hill Road",
			City:      "Mumbai",
			Province:  "MH",
		},
		Buyer:       entities.BuyerInfo{BuyerId: buyer.ID, Mobile: "+911234567890"},
		Vendor:      entities.VendorInfo{VendorId: vendor.ID},
		PaymentMode: paymentMode,
	}
}

func place(t *testing.T, flowManager IFlowManager, paymentMode string) *entities.Order {
	data := flowManager.PlaceOrder(context.Background(), buyer, placeData(paymentMode)).Get()
	require.Nil(t, data.Error())
	order := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusPlaced, order.Status)
	require.NotZero(t, order.OrderId)
	return order
}

func apply(flowManager IFlowManager, actor events.ActorIdentity, action actions.IAction,
	orderId uint64, data interface{}) future.IDataFuture {
	return flowManager.Handle(context.Background(), events.New(actor, action, orderId, data)).Get()
}

func TestFlowGraphStructure(t *testing.T) {
	flowManager, err := NewFlowManager()
	require.Nil(t, err)
	statesMap := flowManager.(*iFlowManagerImpl).StatesMap()

	require.Len(t, statesMap, 9)

	placed := statesMap[states.Placed]
	require.True(t, placed.IsActionValid(vendor_action.New(vendor_action.Confirm)))
	require.True(t, placed.IsActionValid(vendor_action.New(vendor_action.Reject)))
	require.True(t, placed.IsActionValid(buyer_action.New(buyer_action.Cancel)))
	require.False(t, placed.IsActionValid(vendor_action.New(vendor_action.Pack)))

	require.Equal(t, statesMap[states.Confirmed],
		placed.DestinationOf(vendor_action.New(vendor_action.Confirm)))
	require.Equal(t, statesMap[states.Canceled],
		placed.DestinationOf(vendor_action.New(vendor_action.Reject)))

	outForDelivery := statesMap[states.OutForDelivery]
	require.Equal(t, statesMap[states.Delivered],
		outForDelivery.DestinationOf(courier_action.New(courier_action.Deliver)))
	// failure and retry loop back without leaving the state
	require.Equal(t, outForDelivery,
		outForDelivery.DestinationOf(courier_action.New(courier_action.DeliveryFail)))
	require.Equal(t, outForDelivery,
		outForDelivery.DestinationOf(courier_action.New(courier_action.Retry)))

	// terminal states accept nothing
	for _, terminal := range []states.IEnumState{states.Delivered, states.Canceled, states.ReturnedToVendor} {
		assert.Empty(t, statesMap[terminal].Actions())
	}
}

func TestHappyPathWithCODDelivery(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)

	data := apply(flowManager, vendor, vendor_action.New(vendor_action.Confirm), order.OrderId, nil)
	require.Nil(t, data.Error())
	require.Equal(t, entities.OrderStatusConfirmed, data.Data().(*entities.Order).Status)
	require.NotNil(t, data.Data().(*entities.Order).ConfirmedAt)

	data = apply(flowManager, vendor, vendor_action.New(vendor_action.Pick), order.OrderId, nil)
	require.Nil(t, data.Error())

	data = apply(flowManager, vendor, vendor_action.New(vendor_action.Pack), order.OrderId, nil)
	require.Nil(t, data.Error())
	packedOrder := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusPacked, packedOrder.Status)
	require.Len(t, packedOrder.DeliveryOTP, 4)

	data = apply(flowManager, system, system_action.New(system_action.Dispatch), order.OrderId,
		events.DispatchData{CourierId: courier.ID})
	require.Nil(t, data.Error())
	dispatched := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusOutForDelivery, dispatched.Status)
	require.Len(t, dispatched.Attempts, 1)
	require.Equal(t, entities.AttemptOutcomeInTransit, dispatched.Attempts[0].Outcome)

	// wrong otp is rejected without advancing state
	wrongOTP := "0000"
	if packedOrder.DeliveryOTP == wrongOTP {
		wrongOTP = "0001"
	}
	futureError := apply(flowManager, courier, courier_action.New(courier_action.Deliver), order.OrderId,
		events.DeliverData{OTP: wrongOTP, CODCollected: true}).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	data = apply(flowManager, courier, courier_action.New(courier_action.Deliver), order.OrderId,
		events.DeliverData{OTP: packedOrder.DeliveryOTP, CODCollected: true})
	require.Nil(t, data.Error())
	delivered := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusDelivered, delivered.Status)
	require.Equal(t, entities.PaymentStatusCollected, delivered.PaymentStatus)
	require.NotNil(t, delivered.DeliveredAt)
	require.Equal(t, entities.AttemptOutcomeDelivered, delivered.Attempts[0].Outcome)

	// return-eligible line item got its deadline stamped at delivery time
	var eligible *entities.Item
	for _, item := range delivered.Items {
		if item.ReturnEligible {
			eligible = item
		}
	}
	require.NotNil(t, eligible)
	require.NotNil(t, eligible.ReturnDeadline)
	expected := delivered.DeliveredAt.Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *eligible.ReturnDeadline, time.Second)
}

func TestVendorRejectThenConfirmConflicts(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)

	data := apply(flowManager, vendor, vendor_action.New(vendor_action.Reject), order.OrderId,
		events.RejectData{Reason: "out of stock"})
	require.Nil(t, data.Error())
	require.Equal(t, entities.OrderStatusCanceled, data.Data().(*entities.Order).Status)

	futureError := apply(flowManager, vendor, vendor_action.New(vendor_action.Confirm), order.OrderId, nil).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
}

func TestBuyerCancelGating(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)

	// short reason rejected
	futureError := apply(flowManager, buyer, buyer_action.New(buyer_action.Cancel), order.OrderId,
		events.CancelData{Reason: "too slow"}).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	data := apply(flowManager, buyer, buyer_action.New(buyer_action.Cancel), order.OrderId,
		events.CancelData{Reason: "ordered the wrong size by mistake"})
	require.Nil(t, data.Error())
	require.Equal(t, entities.OrderStatusCanceled, data.Data().(*entities.Order).Status)
}

func TestCancelAfterPickConflicts(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)
	require.Nil(t, apply(flowManager, vendor, vendor_action.New(vendor_action.Confirm), order.OrderId, nil).Error())
	require.Nil(t, apply(flowManager, vendor, vendor_action.New(vendor_action.Pick), order.OrderId, nil).Error())

	futureError := apply(flowManager, buyer, buyer_action.New(buyer_action.Cancel), order.OrderId,
		events.CancelData{Reason: "ordered the wrong size by mistake"}).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
}

func TestSkippingStepsRejected(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)

	futureError := apply(flowManager, vendor, vendor_action.New(vendor_action.Pack), order.OrderId, nil).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
}

func TestRoleEnforcement(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)

	// a buyer cannot fire vendor actions
	futureError := apply(flowManager, buyer, vendor_action.New(vendor_action.Confirm), order.OrderId, nil).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Forbidden, futureError.Code())

	// another vendor cannot act on this order
	otherVendor := events.ActorIdentity{ID: 999, Role: actions.Vendor}
	futureError = apply(flowManager, otherVendor, vendor_action.New(vendor_action.Confirm), order.OrderId, nil).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Forbidden, futureError.Code())
}

func TestDeliveryFailRetryAndReturnToVendor(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeCOD)
	require.Nil(t, apply(flowManager, vendor, vendor_action.New(vendor_action.Confirm), order.OrderId, nil).Error())
	require.Nil(t, apply(flowManager, vendor, vendor_action.New(vendor_action.Pick), order.OrderId, nil).Error())
	packedData := apply(flowManager, vendor, vendor_action.New(vendor_action.Pack), order.OrderId, nil)
	require.Nil(t, packedData.Error())
	mintedOTP := packedData.Data().(*entities.Order).DeliveryOTP
	require.Nil(t, apply(flowManager, system, system_action.New(system_action.Dispatch), order.OrderId,
		events.DispatchData{CourierId: courier.ID}).Error())

	// retry before any failure conflicts
	futureError := apply(flowManager, courier, courier_action.New(courier_action.Retry), order.OrderId, nil).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())

	// failing requires a reason
	futureError = apply(flowManager, courier, courier_action.New(courier_action.DeliveryFail), order.OrderId,
		events.DeliveryFailData{}).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	data := apply(flowManager, courier, courier_action.New(courier_action.DeliveryFail), order.OrderId,
		events.DeliveryFailData{Reason: "customer unreachable"})
	require.Nil(t, data.Error())
	failed := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusOutForDelivery, failed.Status)
	require.Equal(t, entities.AttemptOutcomeFailed, failed.Attempts[0].Outcome)

	data = apply(flowManager, courier, courier_action.New(courier_action.Retry), order.OrderId, nil)
	require.Nil(t, data.Error())
	retried := data.Data().(*entities.Order)
	require.Len(t, retried.Attempts, 2)
	require.Equal(t, int32(2), retried.Attempts[1].AttemptNumber)

	// the otp minted at packing survives the retry
	require.Equal(t, mintedOTP, retried.DeliveryOTP)

	data = apply(flowManager, courier, courier_action.New(courier_action.ReturnToVendor), order.OrderId,
		events.ReturnToVendorData{Reason: "address unreachable twice"})
	require.Nil(t, data.Error())
	returned := data.Data().(*entities.Order)
	require.Equal(t, entities.OrderStatusReturnedToVendor, returned.Status)

	// terminal, nothing more is accepted
	futureError = apply(flowManager, courier, courier_action.New(courier_action.Deliver), order.OrderId,
		events.DeliverData{OTP: mintedOTP}).Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
}

func TestOnlinePaymentCallback(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	order := place(t, flowManager, entities.PaymentModeOnline)
	stored, err := app.Globals.OrderRepository.FindById(context.Background(), order.OrderId)
	require.Nil(t, err)
	require.NotNil(t, stored.Payment)
	require.Equal(t, entities.PaymentStatusPending, stored.PaymentStatus)

	data := flowManager.PaymentCallback(context.Background(), buyer, PaymentCallbackRequest{
		OrderId:        order.OrderId,
		GatewayOrderId: stored.Payment.GatewayOrderId,
		PaymentId:      "pay_1",
		Signature:      "sig_1",
	}).Get()
	require.Nil(t, data.Error())
	paid := data.Data().(*entities.Order)
	require.Equal(t, entities.PaymentStatusPaid, paid.PaymentStatus)
	require.Equal(t, entities.OrderStatusPlaced, paid.Status)

	// settling twice conflicts
	futureError := flowManager.PaymentCallback(context.Background(), buyer, PaymentCallbackRequest{
		OrderId: order.OrderId, PaymentId: "pay_1", Signature: "sig_1",
	}).Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Conflict, futureError.Code())
}

func TestPlacementPreconditions(t *testing.T) {
	setupGlobals()
	flowManager, err := NewFlowManager()
	require.Nil(t, err)

	data := placeData(entities.PaymentModeCOD)
	data.Cart.Items = nil
	futureError := flowManager.PlaceOrder(context.Background(), buyer, data).Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	data = placeData(entities.PaymentModeCOD)
	data.Address = entities.AddressInfo{}
	futureError = flowManager.PlaceOrder(context.Background(), buyer, data).Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	data = placeData("cheque")
	futureError = flowManager.PlaceOrder(context.Background(), buyer, data).Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.ValidationError, futureError.Code())

	futureError = flowManager.PlaceOrder(context.Background(), vendor, placeData(entities.PaymentModeCOD)).Get().Error()
	require.NotNil(t, futureError)
	require.Equal(t, future.Forbidden, futureError.Code())
}
