package events

import (
	"time"

	"github.com/bazario/fulfillment-service/domain/actions"
)

// ActorIdentity is the authenticated identity the transport layer resolved
// for the caller. It is passed explicitly into every state machine
// operation; the domain never reads ambient auth state.
type ActorIdentity struct {
	ID   uint64
	Role actions.ActionType
}

type IEvent interface {
	OrderId() uint64
	Actor() ActorIdentity
	Action() actions.IAction
	Data() interface{}
	Timestamp() time.Time
}
