package courier_action

import (
	"github.com/bazario/fulfillment-service/domain/actions"
)

const (
	actionType = actions.Courier
)

type courierActionImpl struct {
	actionType actions.ActionType
	enumAction actions.IEnumAction
}

func New(actionEnum ActionEnums) actions.IAction {
	return courierActionImpl{actionType, actions.IEnumAction(actionEnum)}
}

func (courierAction courierActionImpl) ActionType() actions.ActionType {
	return courierAction.actionType
}

func (courierAction courierActionImpl) ActionEnum() actions.IEnumAction {
	return courierAction.enumAction
}
