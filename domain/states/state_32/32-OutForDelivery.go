package state_32

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	courier_action "github.com/bazario/fulfillment-service/domain/actions/courier"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	"github.com/bazario/fulfillment-service/infrastructure/utils"
)

type outForDeliveryState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &outForDeliveryState{states.NewBaseState(states.OutForDelivery, childes, parents, actionStateMap)}
}

// Process runs the delivery confirmation protocol. Deliver is gated on the
// OTP minted at packing; a mismatch never advances state and the courier
// may retry verification without limit within the attempt.
func (state outForDeliveryState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)
	order := iFrame.Header().Value(string(frame.HeaderOrder)).(*entities.Order)

	if event.Action().ActionType() != actions.Courier {
		future.FactoryOf(iFuture).
			SetError(future.Conflict, "Action Not Acceptable",
				errors.Errorf("action %s not acceptable in state %s",
					event.Action().ActionEnum().ActionName(), state.Name())).
			Send()
		return
	}

	switch event.Action().ActionEnum().ActionName() {
	case courier_action.Deliver.ActionName():
		state.deliver(ctx, iFuture, event, order)
	case courier_action.DeliveryFail.ActionName():
		state.markFailed(ctx, iFuture, event, order)
	case courier_action.Retry.ActionName():
		state.retry(ctx, iFuture, order)
	case courier_action.ReturnToVendor.ActionName():
		state.returnToVendor(ctx, iFuture, event, order)
	default:
		future.FactoryOf(iFuture).
			SetError(future.Conflict, "Action Not Acceptable",
				errors.Errorf("action %s not acceptable in state %s",
					event.Action().ActionEnum().ActionName(), state.Name())).
			Send()
	}
}

func (state outForDeliveryState) deliver(ctx context.Context, iFuture future.IFuture,
	event events.IEvent, order *entities.Order) {
	deliverData, ok := event.Data().(events.DeliverData)
	if !ok {
		future.FactoryOf(iFuture).
			SetError(future.BadRequest, "Delivery Payload Invalid", errors.New("event data is not DeliverData")).
			Send()
		return
	}

	if !utils.VerifyOTP(order.DeliveryOTP, deliverData.OTP) {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Invalid Delivery OTP", errors.New("delivery otp mismatch")).
			Send()
		return
	}

	now := time.Now().UTC()
	if order.PaymentMode == entities.PaymentModeCOD {
		if deliverData.CODCollected {
			order.PaymentStatus = entities.PaymentStatusCollected
		} else {
			order.PaymentStatus = entities.PaymentStatusUncollected
		}
	}

	order.DeliveredAt = &now
	for _, item := range order.Items {
		if item.ReturnEligible && item.ReturnWindowDays > 0 {
			deadline := now.Add(time.Duration(item.ReturnWindowDays) * 24 * time.Hour)
			item.ReturnDeadline = &deadline
			item.UpdatedAt = now
		}
	}

	if attempt := order.LastAttempt(); attempt != nil {
		attempt.Outcome = entities.AttemptOutcomeDelivered
		attempt.CODCollected = deliverData.CODCollected
		attempt.EndedAt = &now
	}

	destination := state.DestinationOf(event.Action())
	order.Status = destination.Name()
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		state.persistError(iFuture, order, err)
		return
	}

	app.Globals.NotifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  savedOrder.BuyerInfo.BuyerId,
		Title:   "Delivered",
		Body:    "Order " + savedOrder.OrderNumber + " was delivered",
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order delivered",
		"state", state.String(), "oid", savedOrder.OrderId, "payment", savedOrder.PaymentStatus)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}

func (state outForDeliveryState) markFailed(ctx context.Context, iFuture future.IFuture,
	event events.IEvent, order *entities.Order) {
	failData, ok := event.Data().(events.DeliveryFailData)
	if !ok || failData.Reason == "" {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Failure Reason Required",
				errors.New("marking a delivery failed requires a reason")).
			Send()
		return
	}

	now := time.Now().UTC()
	if attempt := order.LastAttempt(); attempt != nil {
		attempt.Outcome = entities.AttemptOutcomeFailed
		attempt.FailureReason = failData.Reason
		attempt.EndedAt = &now
	}
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		state.persistError(iFuture, order, err)
		return
	}

	app.Globals.Logger.Infow("delivery attempt failed",
		"state", state.String(), "oid", savedOrder.OrderId, "reason", failData.Reason)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}

func (state outForDeliveryState) retry(ctx context.Context, iFuture future.IFuture, order *entities.Order) {
	lastAttempt := order.LastAttempt()
	if lastAttempt == nil || lastAttempt.Outcome != entities.AttemptOutcomeFailed {
		future.FactoryOf(iFuture).
			SetError(future.Conflict, "No Failed Attempt To Retry",
				errors.New("retry requires the previous attempt to have failed")).
			Send()
		return
	}

	now := time.Now().UTC()
	order.Attempts = append(order.Attempts, entities.DeliveryAttempt{
		AttemptNumber: lastAttempt.AttemptNumber + 1,
		Outcome:       entities.AttemptOutcomeInTransit,
		CreatedAt:     now,
	})
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		state.persistError(iFuture, order, err)
		return
	}

	app.Globals.Logger.Infow("delivery retry opened",
		"state", state.String(), "oid", savedOrder.OrderId, "attempt", lastAttempt.AttemptNumber+1)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}

func (state outForDeliveryState) returnToVendor(ctx context.Context, iFuture future.IFuture,
	event events.IEvent, order *entities.Order) {
	returnData, ok := event.Data().(events.ReturnToVendorData)
	if !ok || returnData.Reason == "" {
		future.FactoryOf(iFuture).
			SetError(future.ValidationError, "Return Reason Required",
				errors.New("returning to vendor requires a reason")).
			Send()
		return
	}

	now := time.Now().UTC()
	order.ReturnReason = returnData.Reason
	if attempt := order.LastAttempt(); attempt != nil && attempt.EndedAt == nil {
		attempt.Outcome = entities.AttemptOutcomeFailed
		attempt.FailureReason = returnData.Reason
		attempt.EndedAt = &now
	}

	destination := state.DestinationOf(event.Action())
	order.Status = destination.Name()
	order.UpdatedAt = now

	savedOrder, err := state.SaveOrder(ctx, order)
	if err != nil {
		state.persistError(iFuture, order, err)
		return
	}

	app.Globals.NotifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  savedOrder.VendorInfo.VendorId,
		Title:   "Order returned",
		Body:    "Order " + savedOrder.OrderNumber + " is being returned to you",
		OrderId: savedOrder.OrderId,
	})

	app.Globals.Logger.Infow("order returned to vendor",
		"state", state.String(), "oid", savedOrder.OrderId, "reason", returnData.Reason)
	future.FactoryOf(iFuture).SetData(savedOrder).Send()
}

func (state outForDeliveryState) persistError(iFuture future.IFuture, order *entities.Order, err error) {
	app.Globals.Logger.Errorw("transition persist failed",
		"state", state.String(), "oid", order.OrderId, "error", err)
	future.FactoryOf(iFuture).
		SetError(future.InternalError, "Unknown Error", err).
		Send()
}
