package domain

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

// IFlowManager owns the order state graph. Every order mutation enters
// through it; transitions for the same order are serialized so concurrent
// conflicting attempts resolve to exactly one winner and a Conflict error
// for the loser.
type IFlowManager interface {
	// PlaceOrder creates an order from the buyer's cart snapshot.
	PlaceOrder(ctx context.Context, actor events.ActorIdentity, data events.PlaceOrderData) future.IFuture

	// Handle applies a lifecycle action to an existing order.
	Handle(ctx context.Context, event events.IEvent) future.IFuture

	// PaymentCallback settles the gateway verification result of an online
	// order. Verification failure leaves the order placed.
	PaymentCallback(ctx context.Context, actor events.ActorIdentity, request PaymentCallbackRequest) future.IFuture

	// GetOrder returns the order, visible to its buyer, vendor, assigned
	// courier and operators.
	GetOrder(ctx context.Context, actor events.ActorIdentity, orderId uint64) future.IFuture

	// ListOrders pages through the orders visible to the actor.
	ListOrders(ctx context.Context, actor events.ActorIdentity, page, perPage int64) future.IFuture
}

type PaymentCallbackRequest struct {
	OrderId        uint64
	GatewayOrderId string
	PaymentId      string
	Signature      string
}
