package state_31

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
)

type packedState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &packedState{states.NewBaseState(states.Packed, childes, parents, actionStateMap)}
}

// Process handles dispatch. A courier must be assigned before the order
// can leave the warehouse; dispatch opens the first delivery attempt.
func (state packedState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)
	order := iFrame.Header().Value(string(frame.HeaderOrder)).(*entities.Order)

	dispatchData, ok := event.Data().(events.DispatchData)
	if !ok || dispatchData.CourierId == 0 {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Courier Not Assigned",
				errors.New("dispatch requires an assigned courier")).
			Send()
		return
	}

	now := time.Now().UTC()
	order.CourierId = dispatchData.CourierId
	order.DispatchedAt = &now
	order.Attempts = append(order.Attempts, entities.DeliveryAttempt{
		AttemptNumber: 1,
		Outcome:       entities.AttemptOutcomeInTransit,
		CreatedAt:     now,
	})

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

	app.Globals.NotifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  savedOrder.BuyerInfo.BuyerId,
		Title:   "Out for delivery",
		Body:    "Order " + savedOrder.OrderNumber + " is out for delivery",
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order dispatched",
		"state", state.String(), "oid", savedOrder.OrderId, "cid", savedOrder.CourierId)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}
