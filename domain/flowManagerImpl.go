package domain

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	buyer_action "github.com/bazario/fulfillment-service/domain/actions/buyer"
	courier_action "github.com/bazario/fulfillment-service/domain/actions/courier"
	system_action "github.com/bazario/fulfillment-service/domain/actions/system"
	vendor_action "github.com/bazario/fulfillment-service/domain/actions/vendor"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	order_repository "github.com/bazario/fulfillment-service/domain/models/repository/order"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/domain/states/state_01"
	"github.com/bazario/fulfillment-service/domain/states/state_10"
	"github.com/bazario/fulfillment-service/domain/states/state_20"
	"github.com/bazario/fulfillment-service/domain/states/state_30"
	"github.com/bazario/fulfillment-service/domain/states/state_31"
	"github.com/bazario/fulfillment-service/domain/states/state_32"
	"github.com/bazario/fulfillment-service/domain/states/state_33"
	"github.com/bazario/fulfillment-service/domain/states/state_40"
	"github.com/bazario/fulfillment-service/domain/states/state_41"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	payment_service "github.com/bazario/fulfillment-service/infrastructure/services/payment"

	"go.mongodb.org/mongo-driver/bson"
)

const lockStripes = 64

type iFlowManagerImpl struct {
	statesMap map[states.IEnumState]states.IState
	locks     [lockStripes]sync.Mutex
}

func NewFlowManager() (IFlowManager, error) {
	flowManager := &iFlowManagerImpl{
		statesMap: make(map[states.IEnumState]states.IState, 16),
	}
	if err := flowManager.setupFlowManager(); err != nil {
		return nil, errors.Wrap(err, "setupFlowManager failed")
	}
	return flowManager, nil
}

// setupFlowManager builds the state graph leaf first so every transition
// target exists before the state that points at it. The two in-place
// delivery actions are patched into the out_for_delivery map after its
// state exists because they loop back onto it.
func (flowManager *iFlowManagerImpl) setupFlowManager() error {
	canceled := state_40.New(nil, nil, map[actions.IAction]states.IState{})
	flowManager.statesMap[states.Canceled] = canceled

	returnedToVendor := state_41.New(nil, nil, map[actions.IAction]states.IState{})
	flowManager.statesMap[states.ReturnedToVendor] = returnedToVendor

	delivered := state_33.New(nil, nil, map[actions.IAction]states.IState{})
	flowManager.statesMap[states.Delivered] = delivered

	outForDeliveryMap := map[actions.IAction]states.IState{
		courier_action.New(courier_action.Deliver):        delivered,
		courier_action.New(courier_action.ReturnToVendor): returnedToVendor,
		courier_action.New(courier_action.DeliveryFail):   nil,
		courier_action.New(courier_action.Retry):          nil,
	}
	outForDelivery := state_32.New(
		[]states.IState{delivered, returnedToVendor}, nil, outForDeliveryMap)
	outForDeliveryMap[courier_action.New(courier_action.DeliveryFail)] = outForDelivery
	outForDeliveryMap[courier_action.New(courier_action.Retry)] = outForDelivery
	flowManager.statesMap[states.OutForDelivery] = outForDelivery

	packed := state_31.New(
		[]states.IState{outForDelivery}, nil,
		map[actions.IAction]states.IState{
			system_action.New(system_action.Dispatch): outForDelivery,
		})
	flowManager.statesMap[states.Packed] = packed

	picked := state_30.New(
		[]states.IState{packed}, nil,
		map[actions.IAction]states.IState{
			vendor_action.New(vendor_action.Pack): packed,
		})
	flowManager.statesMap[states.Picked] = picked

	confirmed := state_20.New(
		[]states.IState{picked, canceled}, nil,
		map[actions.IAction]states.IState{
			vendor_action.New(vendor_action.Pick): picked,
			buyer_action.New(buyer_action.Cancel): canceled,
		})
	flowManager.statesMap[states.Confirmed] = confirmed

	placed := state_10.New(
		[]states.IState{confirmed, canceled}, nil,
		map[actions.IAction]states.IState{
			vendor_action.New(vendor_action.Confirm): confirmed,
			vendor_action.New(vendor_action.Reject):  canceled,
			buyer_action.New(buyer_action.Cancel):    canceled,
		})
	flowManager.statesMap[states.Placed] = placed

	newOrder := state_01.New(
		[]states.IState{placed}, nil,
		map[actions.IAction]states.IState{
			buyer_action.New(buyer_action.Place): placed,
		})
	flowManager.statesMap[states.NewOrder] = newOrder

	return nil
}

func (flowManager *iFlowManagerImpl) StatesMap() map[states.IEnumState]states.IState {
	return flowManager.statesMap
}

func (flowManager *iFlowManagerImpl) PlaceOrder(ctx context.Context, actor events.ActorIdentity, data events.PlaceOrderData) future.IFuture {
	if actor.Role != actions.Buyer {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("only buyers place orders"))
	}

	event := events.New(actor, buyer_action.New(buyer_action.Place), 0, data)
	iFuture := future.Factory().SetCapacity(1).Build()

	iFrame := frame.Factory().
		SetEvent(event).
		SetFuture(iFuture).
		Build()

	flowManager.statesMap[states.NewOrder].Process(ctx, iFrame)
	return iFuture
}

func (flowManager *iFlowManagerImpl) Handle(ctx context.Context, event events.IEvent) future.IFuture {
	if event.Actor().Role != event.Action().ActionType() {
		return errorFuture(future.Forbidden, "Actor Not Permitted",
			errors.Errorf("a %s cannot perform %s actions",
				event.Actor().Role.Name(), event.Action().ActionType().Name()))
	}

	lock := &flowManager.locks[event.OrderId()%lockStripes]
	lock.Lock()
	defer lock.Unlock()

	order, err := app.Globals.OrderRepository.FindById(ctx, event.OrderId())
	if err != nil {
		return errorFuture(future.NotFound, "Order Not Found", err)
	}

	if forbiddenFuture := checkOwnership(event.Actor(), order); forbiddenFuture != nil {
		return forbiddenFuture
	}

	enumState, err := states.FromStatus(order.Status)
	if err != nil {
		return errorFuture(future.InternalError, "Unknown Error", err)
	}
	state := flowManager.statesMap[enumState]

	if !state.IsActionValid(event.Action()) {
		return errorFuture(future.Conflict, "Transition Not Allowed",
			errors.Errorf("action %s is not allowed while order %d is %s",
				event.Action().ActionEnum().ActionName(), order.OrderId, order.Status))
	}

	iFuture := future.Factory().SetCapacity(1).Build()
	iFrame := frame.Factory().
		SetOrderId(order.OrderId).
		SetOrder(order).
		SetEvent(event).
		SetFuture(iFuture).
		Build()

	state.Process(ctx, iFrame)
	return iFuture
}

func (flowManager *iFlowManagerImpl) PaymentCallback(ctx context.Context, actor events.ActorIdentity, request PaymentCallbackRequest) future.IFuture {
	lock := &flowManager.locks[request.OrderId%lockStripes]
	lock.Lock()
	defer lock.Unlock()

	order, err := app.Globals.OrderRepository.FindById(ctx, request.OrderId)
	if err != nil {
		return errorFuture(future.NotFound, "Order Not Found", err)
	}

	if actor.Role == actions.Buyer && actor.ID != order.BuyerInfo.BuyerId {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order belongs to another buyer"))
	}
	if order.PaymentMode != entities.PaymentModeOnline {
		return errorFuture(future.Conflict, "Payment Mode Mismatch", errors.New("order is not an online payment order"))
	}
	if order.PaymentStatus == entities.PaymentStatusPaid {
		return errorFuture(future.Conflict, "Payment Already Settled", errors.New("payment already verified"))
	}

	verifyData := app.Globals.PaymentService.VerifyPayment(ctx, payment_service.PaymentVerifyRequest{
		OrderId:        order.OrderId,
		GatewayOrderId: request.GatewayOrderId,
		PaymentId:      request.PaymentId,
		Signature:      request.Signature,
	}).Get()
	if verifyData.Error() != nil {
		return future.Factory().SetCapacity(1).SetErrorOf(verifyData.Error()).BuildAndSend()
	}

	verifyResponse := verifyData.Data().(payment_service.PaymentVerifyResponse)
	now := time.Now().UTC()
	if order.Payment == nil {
		order.Payment = &entities.PaymentInfo{GatewayOrderId: request.GatewayOrderId, CreatedAt: now}
	}
	order.Payment.Signature = request.Signature
	order.Payment.Result = verifyResponse.Result
	order.Payment.Reason = verifyResponse.Reason
	order.Payment.VerifiedAt = &now
	order.Payment.Price = &entities.Money{
		Amount:   order.Invoice.GrandTotal.Amount,
		Currency: order.Invoice.GrandTotal.Currency,
	}

	if verifyResponse.Result {
		order.PaymentStatus = entities.PaymentStatusPaid
	} else {
		order.PaymentStatus = entities.PaymentStatusFailed
	}

	savedOrder, err := app.Globals.OrderRepository.Save(ctx, *order)
	if err != nil {
		return errorFuture(future.InternalError, "Unknown Error", err)
	}

	app.Globals.Logger.Infow("payment callback settled",
		"fn", "PaymentCallback", "oid", savedOrder.OrderId, "result", verifyResponse.Result)
	return future.Factory().SetCapacity(1).SetData(savedOrder).BuildAndSend()
}

func (flowManager *iFlowManagerImpl) GetOrder(ctx context.Context, actor events.ActorIdentity, orderId uint64) future.IFuture {
	order, err := app.Globals.OrderRepository.FindById(ctx, orderId)
	if err != nil {
		return errorFuture(future.NotFound, "Order Not Found", err)
	}
	if forbiddenFuture := checkVisibility(actor, order); forbiddenFuture != nil {
		return forbiddenFuture
	}
	return future.Factory().SetCapacity(1).SetData(order).BuildAndSend()
}

func (flowManager *iFlowManagerImpl) ListOrders(ctx context.Context, actor events.ActorIdentity, page, perPage int64) future.IFuture {
	var filter bson.D
	switch actor.Role {
	case actions.Buyer:
		filter = bson.D{{Key: "buyerInfo.buyerId", Value: actor.ID}}
	case actions.Vendor:
		filter = bson.D{{Key: "vendorInfo.vendorId", Value: actor.ID}}
	case actions.Courier:
		filter = bson.D{{Key: "courierId", Value: actor.ID}}
	case actions.Operator:
		filter = bson.D{}
	default:
		return errorFuture(future.Forbidden, "Actor Not Permitted",
			errors.Errorf("role %s cannot list orders", actor.Role.Name()))
	}

	orders, totalCount, err := app.Globals.OrderRepository.FindByFilterWithPage(ctx,
		func() interface{} { return filter }, page, perPage)
	if err != nil {
		if errors.Is(err, order_repository.ErrorPageNotAvailable) ||
			errors.Is(err, order_repository.ErrorTotalCountExceeded) {
			return errorFuture(future.BadRequest, "Page Not Available", err)
		}
		return errorFuture(future.InternalError, "Unknown Error", err)
	}

	return future.Factory().SetCapacity(1).SetData(OrderPage{
		Orders:     orders,
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
	}).BuildAndSend()
}

type OrderPage struct {
	Orders     []*entities.Order
	Page       int64
	PerPage    int64
	TotalCount int64
}

func checkOwnership(actor events.ActorIdentity, order *entities.Order) future.IFuture {
	switch actor.Role {
	case actions.Buyer:
		if actor.ID != order.BuyerInfo.BuyerId {
			return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order belongs to another buyer"))
		}
	case actions.Vendor:
		if actor.ID != order.VendorInfo.VendorId {
			return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order belongs to another vendor"))
		}
	case actions.Courier:
		if order.CourierId == 0 || actor.ID != order.CourierId {
			return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order is not assigned to this courier"))
		}
	}
	return nil
}

func checkVisibility(actor events.ActorIdentity, order *entities.Order) future.IFuture {
	switch actor.Role {
	case actions.Operator, actions.System:
		return nil
	}
	return checkOwnership(actor, order)
}

func errorFuture(code future.ErrorCode, message string, reason error) future.IFuture {
	return future.Factory().SetCapacity(1).SetError(code, message, reason).BuildAndSend()
}
