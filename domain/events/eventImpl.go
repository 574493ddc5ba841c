package events

import (
	"time"

	"github.com/bazario/fulfillment-service/domain/actions"
)

type eventImpl struct {
	actor     ActorIdentity
	action    actions.IAction
	orderId   uint64
	data      interface{}
	timestamp time.Time
}

func New(actor ActorIdentity, action actions.IAction, orderId uint64,
	data interface{}) IEvent {
	return eventImpl{actor, action, orderId, data, time.Now().UTC()}
}

func (event eventImpl) Actor() ActorIdentity {
	return event.actor
}

func (event eventImpl) Action() actions.IAction {
	return event.action
}

func (event eventImpl) Data() interface{} {
	return event.data
}

func (event eventImpl) OrderId() uint64 {
	return event.orderId
}

func (event eventImpl) Timestamp() time.Time {
	return event.timestamp
}
