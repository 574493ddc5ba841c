package states

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/infrastructure/frame"
)

type IEnumState interface {
	StateName() string
	StateIndex() int
	Ordinal() int
	Values() []string
}

type IState interface {
	Name() string
	Index() int
	Childes() []IState
	Parents() []IState
	Actions() []actions.IAction
	IsActionValid(actions.IAction) bool
	DestinationOf(actions.IAction) IState
	Process(ctx context.Context, frame frame.IFrame)
}
