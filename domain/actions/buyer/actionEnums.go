package buyer_action

import (
	"github.com/pkg/errors"
)

type ActionEnums int

var actionStrings = []string{
	"Place",
	"Cancel",
}

const (
	Place ActionEnums = iota
	Cancel
)

func (action ActionEnums) ActionName() string {
	return action.String()
}

func (action ActionEnums) ActionOrdinal() int {
	if action < Place || action > Cancel {
		return -1
	}
	return int(action)
}

func (action ActionEnums) Values() []string {
	return actionStrings
}

func (action ActionEnums) String() string {
	if action < Place || action > Cancel {
		return ""
	}
	return actionStrings[action]
}

func FromString(action string) (ActionEnums, error) {
	switch action {
	case "Place":
		return Place, nil
	case "Cancel":
		return Cancel, nil
	default:
		return -1, errors.New("invalid buyer action string")
	}
}
