package actions

import (
	"github.com/pkg/errors"
)

// ActionType identifies the actor role a transition is gated on.
type ActionType int

var actionTypeStrings = []string{
	"Buyer",
	"Vendor",
	"Courier",
	"Operator",
	"System",
}

const (
	Buyer ActionType = iota
	Vendor
	Courier
	Operator
	System
)

func (actorType ActionType) Name() string {
	return actorType.String()
}

func (actorType ActionType) Ordinal() int {
	if actorType < Buyer || actorType > System {
		return -1
	}
	return int(actorType)
}

func (actorType ActionType) Values() []string {
	return actionTypeStrings
}

func (actorType ActionType) String() string {
	if actorType < Buyer || actorType > System {
		return ""
	}
	return actionTypeStrings[actorType]
}

func FromString(actionType string) (ActionType, error) {
	switch actionType {
	case "Buyer":
		return Buyer, nil
	case "Vendor":
		return Vendor, nil
	case "Courier":
		return Courier, nil
	case "Operator":
		return Operator, nil
	case "System":
		return System, nil
	default:
		return -1, errors.New("invalid actionType string")
	}
}
