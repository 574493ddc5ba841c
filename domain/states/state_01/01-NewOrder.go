package state_01

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	payment_service "github.com/bazario/fulfillment-service/infrastructure/services/payment"
)

type newOrderState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &newOrderState{states.NewBaseState(states.NewOrder, childes, parents, actionStateMap)}
}

// Process turns a validated placement event into a persisted order. The
// cart's invoice is frozen onto the order as-is; pricing is never redone
// after placement.
func (state newOrderState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)

	placeData, ok := event.Data().(events.PlaceOrderData)
	if !ok {
		future.FactoryOf(iFuture).
			SetError(future.BadRequest, "Placement Payload Invalid", errors.New("event data is not PlaceOrderData")).
			Send()
		return
	}

	if placeData.Cart == nil || placeData.Cart.IsEmpty() {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Cart Empty", errors.New("placement requires a non-empty cart")).
			Send()
		return
	}
	if placeData.Address.Address == "" || placeData.Address.City == "" {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Address Missing", errors.New("placement requires a delivery address")).
			Send()
		return
	}
	if placeData.PaymentMode != entities.PaymentModeCOD && placeData.PaymentMode != entities.PaymentModeOnline {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Payment Mode Invalid",
				errors.Errorf("payment mode %q", placeData.PaymentMode)).
			Send()
		return
	}

	order, err := state.buildOrder(placeData)
	if err != nil {
		future.FactoryOf(iFuture).
			SetError(future.InternalError, "Unknown Error", err).
			Send()
		return
	}

	destination := state.DestinationOf(event.Action())
	order.Status = destination.Name()
	order.UpdatedAt = time.Now().UTC()

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		app.Globals.Logger.Errorw("placement persist failed",
			"state", state.String(), "bid", order.BuyerInfo.BuyerId, "error", err)
		future.FactoryOf(iFuture).
			SetError(future.InternalError, "Unknown Error", err).
			Send()
		return
	}

	if savedOrder.PaymentMode == entities.PaymentModeOnline {
		paymentData := app.Globals.PaymentService.CreatePaymentOrder(ctx, payment_service.PaymentOrderRequest{
			OrderId:  savedOrder.OrderId,
			Amount:   savedOrder.Invoice.GrandTotal.Amount,
			Currency: savedOrder.Invoice.GrandTotal.Currency,
		}).Get()
		if paymentData.Error() != nil {
			app.Globals.Logger.Errorw("gateway order creation failed",
				"state", state.String(), "oid", savedOrder.OrderId, "error", paymentData.Error().Reason())
		} else {
			paymentResponse := paymentData.Data().(payment_service.PaymentOrderResponse)
			savedOrder.Payment = &entities.PaymentInfo{
				GatewayOrderId: paymentResponse.GatewayOrderId,
				CreatedAt:      time.Now().UTC(),
			}
			if savedOrder, err = state.SaveOrder(ctx, savedOrder); err != nil {
				future.FactoryOf(iFuture).
					SetError(future.InternalError, "Unknown Error", err).
					Send()
				return
			}
		}
	}

	if err := app.Globals.CartRepository.DeleteByBuyerId(ctx, savedOrder.BuyerInfo.BuyerId); err != nil {
		app.Globals.Logger.Errorw("cart clear after placement failed",
			"state", state.String(), "oid", savedOrder.OrderId, "error", err)
	}

	app.Globals.NotifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  savedOrder.VendorInfo.VendorId,
		Title:   "New order",
		Body:    "Order " + savedOrder.OrderNumber + " placed",
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order placed",
		"state", state.String(), "oid", savedOrder.OrderId, "number", savedOrder.OrderNumber)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}

func (state newOrderState) buildOrder(placeData events.PlaceOrderData) (*entities.Order, error) {
	now := time.Now().UTC()
	items := make([]*entities.Item, 0, len(placeData.Cart.Items))
	for _, cartItem := range placeData.Cart.Items {
		unitPrice, err := decimal.NewFromString(cartItem.UnitPrice.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid unit price of inventory %s", cartItem.InventoryId)
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))

		items = append(items, &entities.Item{
			InventoryId:      cartItem.InventoryId,
			Title:            cartItem.Title,
			Brand:            cartItem.Brand,
			Category:         cartItem.Category,
			Image:            cartItem.Image,
			SellUnit:         cartItem.SellUnit,
			Quantity:         cartItem.Quantity,
			ReturnEligible:   cartItem.ReturnEligible,
			ReturnWindowDays: cartItem.ReturnWindowDays,
			Invoice: entities.ItemInvoice{
				Unit:     cartItem.UnitPrice,
				Total:    entities.Money{Amount: lineTotal.StringFixed(2), Currency: cartItem.UnitPrice.Currency},
				Original: cartItem.UnitPrice,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return &entities.Order{
		BuyerInfo:       placeData.Buyer,
		VendorInfo:      placeData.Vendor,
		ShippingAddress: placeData.Address,
		Invoice:         placeData.Cart.Invoice,
		PaymentMode:     placeData.PaymentMode,
		PaymentStatus:   entities.PaymentStatusPending,
		Items:           items,
		Attempts:        []entities.DeliveryAttempt{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
