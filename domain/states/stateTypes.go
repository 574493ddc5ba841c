package states

import (
	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type StateType int

type stateEnum struct {
	name  string
	index int
}

// name is the wire status string persisted on Order.Status; index groups
// states the way the fulfillment flow progresses (tens per phase).
var stateTypeMap = map[int]stateEnum{
	0: {"new_order", 1},

	1: {entities.OrderStatusPlaced, 10},
	2: {entities.OrderStatusConfirmed, 20},

	3: {entities.OrderStatusPicked, 30},
	4: {entities.OrderStatusPacked, 31},
	5: {entities.OrderStatusOutForDelivery, 32},
	6: {entities.OrderStatusDelivered, 33},

	7: {entities.OrderStatusCanceled, 40},
	8: {entities.OrderStatusReturnedToVendor, 41},
}

const (
	NewOrder StateType = iota
	Placed
	Confirmed
	Picked
	Packed
	OutForDelivery
	Delivered
	Canceled
	ReturnedToVendor
)

func (stateType StateType) StateName() string {
	return stateType.String()
}

func (stateType StateType) StateIndex() int {
	return stateTypeMap[stateType.Ordinal()].index
}

func (stateType StateType) Ordinal() int {
	if stateType < NewOrder || stateType > ReturnedToVendor {
		return -1
	}
	return int(stateType)
}

func (stateType StateType) Values() []string {
	keys := make([]string, 0, len(stateTypeMap))
	for _, value := range stateTypeMap {
		keys = append(keys, value.name)
	}
	return keys
}

func (stateType StateType) String() string {
	if stateType < NewOrder || stateType > ReturnedToVendor {
		return ""
	}
	return stateTypeMap[stateType.Ordinal()].name
}

func FromStatus(status string) (IEnumState, error) {
	switch status {
	case entities.OrderStatusPlaced:
		return Placed, nil
	case entities.OrderStatusConfirmed:
		return Confirmed, nil
	case entities.OrderStatusPicked:
		return Picked, nil
	case entities.OrderStatusPacked:
		return Packed, nil
	case entities.OrderStatusOutForDelivery:
		return OutForDelivery, nil
	case entities.OrderStatusDelivered:
		return Delivered, nil
	case entities.OrderStatusCanceled:
		return Canceled, nil
	case entities.OrderStatusReturnedToVendor:
		return ReturnedToVendor, nil
	default:
		return nil, errors.Errorf("unknown order status %q", status)
	}
}
