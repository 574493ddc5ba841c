package state_40

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/states"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type canceledState struct {
	*states.BaseStateImpl
}

func New(childes, parents []states.IState, actionStateMap map[actions.IAction]states.IState) states.IState {
	return &canceledState{states.NewBaseState(states.Canceled, childes, parents, actionStateMap)}
}

func (state canceledState) Process(ctx context.Context, iFrame frame.IFrame) {
	iFuture := iFrame.Header().Value(string(frame.HeaderFuture)).(future.IFuture)
	event := iFrame.Body().Content().(events.IEvent)

	future.FactoryOf(iFuture).
		SetError(future.Conflict, "Order State Terminal",
			errors.Errorf("action %s not acceptable in terminal state %s",
				event.Action().ActionEnum().ActionName(), state.Name())).
		Send()
}
