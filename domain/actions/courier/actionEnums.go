package courier_action

import (
	"github.com/pkg/errors"
)

type ActionEnums int

var actionStrings = []string{
	"Deliver",
	"DeliveryFail",
	"Retry",
	"ReturnToVendor",
}

const (
	Deliver ActionEnums = iota
	DeliveryFail
	Retry
	ReturnToVendor
)

func (action ActionEnums) ActionName() string {
	return action.String()
}

func (action ActionEnums) ActionOrdinal() int {
	if action < Deliver || action > ReturnToVendor {
		return -1
	}
	return int(action)
}

func (action ActionEnums) Values() []string {
	return actionStrings
}

func (action ActionEnums) String() string {
	if action < Deliver || action > ReturnToVendor {
		return ""
	}
	return actionStrings[action]
}

func FromString(action string) (ActionEnums, error) {
	switch action {
	case "Deliver":
		return Deliver, nil
	case "DeliveryFail":
		return DeliveryFail, nil
	case "Retry":
		return Retry, nil
	case "ReturnToVendor":
		return ReturnToVendor, nil
	default:
		return -1, errors.New("invalid courier action string")
	}
}
