package system_action

import (
	"github.com/bazario/fulfillment-service/domain/actions"
)

const (
	actionType = actions.System
)

type systemActionImpl struct {
	actionType actions.ActionType
	enumAction actions.IEnumAction
}

func New(actionEnum ActionEnums) actions.IAction {
	return systemActionImpl{actionType, actions.IEnumAction(actionEnum)}
}

func (systemAction systemActionImpl) ActionType() actions.ActionType {
	return systemAction.actionType
}

func (systemAction systemActionImpl) ActionEnum() actions.IEnumAction {
	return systemAction.enumAction
}
