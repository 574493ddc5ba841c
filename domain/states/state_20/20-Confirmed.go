package state_20

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	buyer_action "github.com/bazario/fulfillment-service/domain/actions/buyer"
	vendor_action "github.com/bazario/fulfillment-service/domain/actions/vendor"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
)

type confirmedState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &confirmedState{states.NewBaseState(states.Confirmed, childes, parents, actionStateMap)}
}

func (state confirmedState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)
	order := iFrame.Header().Value(string(frame.HeaderOrder)).(*entities.Order)

	now := time.Now().UTC()
	actionName := event.Action().ActionEnum().ActionName()

	switch {
	case event.Action().ActionType() == actions.Vendor && actionName == vendor_action.Pick.ActionName():
		// nothing beyond the status move; picking has no extra bookkeeping

	case event.Action().ActionType() == actions.Buyer && actionName == buyer_action.Cancel.ActionName():
		cancelData, ok := event.Data().(events.CancelData)
		if !ok || len(cancelData.Reason) < app.Globals.Config.App.MinReasonLength {
			future.FactoryOf(iFuture).
				SetError(future.ValidationError, "Cancellation Reason Too Short",
					errors.Errorf("cancellation reason must be at least %d characters",
						app.Globals.Config.App.MinReasonLength)).
				Send()
			return
		}
		order.CancelReason = cancelData.Reason
		order.CanceledAt = &now

	default:
		future.FactoryOf(iFuture).
			SetError(future.Conflict, "Action Not Acceptable",
				errors.Errorf("action %s not acceptable in state %s", actionName, state.Name())).
			Send()
		return
	}

	destination := state.DestinationOf(event.Action())
	order.Status = destination.Name()
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		app.Globals.Logger.Errorw("transition persist failed",
			"state", state.String(), "oid", order.OrderId, "action", actionName, "error", err)
		future.FactoryOf(iFuture).
			SetError(future.InternalError, "Unknown Error", err).
			Send()
		return
	}

	app.Globals.NotifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  savedOrder.BuyerInfo.BuyerId,
		Title:   "Order " + savedOrder.Status,
		Body:    "Order " + savedOrder.OrderNumber + " is " + savedOrder.Status,
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order transitioned",
		"state", state.String(), "oid", savedOrder.OrderId, "action", actionName, "status", savedOrder.Status)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}
