package state_30

import (
	"context"
	"time"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	"github.com/bazario/fulfillment-service/infrastructure/utils"
)

type pickedState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &pickedState{states.NewBaseState(states.Picked, childes, parents, actionStateMap)}
}

// Process handles packing. The delivery OTP is minted exactly once here
// and survives every later delivery retry.
func (state pickedState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)
	order := iFrame.Header().Value(string(frame.HeaderOrder)).(*entities.Order)

	now := time.Now().UTC()

	if order.DeliveryOTP == "" {
		otp, err := utils.GenerateOTP()
		if err != nil {
			app.Globals.Logger.Errorw("otp mint failed",
				"state", state.String(), "oid", order.OrderId, "error", err)
			future.FactoryOf(iFuture).
				SetError(future.InternalError, "Unknown Error", err).
				Send()
			return
		}
		order.DeliveryOTP = otp
	}
	order.PackedAt = &now

	destination := state.DestinationOf(event.Action())
	order.Status = destination.Name()
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		app.Globals.Logger.Errorw("transition persist failed",
			"state", state.String(), "oid", order.OrderId, "error", err)
		future.FactoryOf(iFuture).
			SetError(future.InternalError, "Unknown Error", err).
			Send()
		return
	}

	app.Globals.NotifyService.NotifyBySMS(ctx, notify_service.SMSRequestModel{
		Phone:   savedOrder.BuyerInfo.Mobile,
		Body:    "Order " + savedOrder.OrderNumber + " packed. Delivery code: " + savedOrder.DeliveryOTP,
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order packed",
		"state", state.String(), "oid", savedOrder.OrderId)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}
