package system_action

import (
	"github.com/pkg/errors"
)

type ActionEnums int

var actionStrings = []string{
	"Dispatch",
}

const (
	Dispatch ActionEnums = iota
)

func (action ActionEnums) ActionName() string {
	return action.String()
}

func (action ActionEnums) ActionOrdinal() int {
	if action != Dispatch {
		return -1
	}
	return int(action)
}

func (action ActionEnums) Values() []string {
	return actionStrings
}

func (action ActionEnums) String() string {
	if action != Dispatch {
		return ""
	}
	return actionStrings[action]
}

func FromString(action string) (ActionEnums, error) {
	switch action {
	case "Dispatch":
		return Dispatch, nil
	default:
		return -1, errors.New("invalid system action string")
	}
}
