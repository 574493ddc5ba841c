package states

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type BaseStateImpl struct {
	name           string
	index          int
	childes        []IState
	parents        []IState
	actions        []actions.IAction
	actionStateMap map[actions.IAction]IState
}

func NewBaseState(enumState IEnumState, childes, parents []IState,
	actionStateMap map[actions.IAction]IState) *BaseStateImpl {
	actionList := make([]actions.IAction, 0, len(actionStateMap))
	for key := range actionStateMap {
		actionList = append(actionList, key)
	}

	return &BaseStateImpl{enumState.StateName(), enumState.StateIndex(),
		childes, parents, actionList, actionStateMap}
}

func (base BaseStateImpl) Name() string {
	return base.name
}

func (base BaseStateImpl) Index() int {
	return base.index
}

func (base BaseStateImpl) Childes() []IState {
	return base.childes
}

func (base BaseStateImpl) Parents() []IState {
	return base.parents
}

func (base BaseStateImpl) Actions() []actions.IAction {
	return base.actions
}

func (base BaseStateImpl) IsActionValid(action actions.IAction) bool {
	for key := range base.actionStateMap {
		if key.ActionType() == action.ActionType() &&
			key.ActionEnum().ActionName() == action.ActionEnum().ActionName() {
			return true
		}
	}
	return false
}

// DestinationOf resolves the target state of an action according to the
// transition table this state was built with.
func (base BaseStateImpl) DestinationOf(action actions.IAction) IState {
	for key, state := range base.actionStateMap {
		if key.ActionType() == action.ActionType() &&
			key.ActionEnum().ActionName() == action.ActionEnum().ActionName() {
			return state
		}
	}
	return nil
}

func (base BaseStateImpl) ActionStateMap() map[actions.IAction]IState {
	return base.actionStateMap
}

func (base *BaseStateImpl) BaseState() *BaseStateImpl {
	return base
}

func (base BaseStateImpl) String() string {
	return strconv.Itoa(base.index) + "." + base.name
}

// SetOrderStatus stamps this state's wire status onto the order.
func (base BaseStateImpl) SetOrderStatus(ctx context.Context, order *entities.Order) {
	order.UpdatedAt = time.Now().UTC()
	order.Status = base.name
}

func (base BaseStateImpl) SaveOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	savedOrder, err := app.Globals.OrderRepository.Save(ctx, *order)
	if err != nil {
		return nil, errors.Wrap(err, "OrderRepository.Save failed")
	}
	return savedOrder, nil
}
