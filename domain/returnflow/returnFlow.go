package returnflow

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

var ErrorOrderNotDelivered = errors.New("order not delivered")
var ErrorItemNotEligible = errors.New("item not eligible for return")
var ErrorReturnWindowExpired = errors.New("return window expired")
var ErrorDuplicateActiveRequest = errors.New("active return request exists")
var ErrorReasonInvalid = errors.New("return reason invalid")
var ErrorDescriptionTooShort = errors.New("description too short")
var ErrorTooManyEvidenceImages = errors.New("too many evidence images")
var ErrorRequestNotActionable = errors.New("return request not actionable")
var ErrorRefundExceedsLineTotal = errors.New("refund exceeds line total")

// IReturnFlow runs the return and refund workflow. It is deliberately a
// separate little machine from the order flow: a return request has its
// own lifecycle (requested, approved or rejected, completed) hanging off a
// delivered order without ever moving the order itself.
type IReturnFlow interface {
	// Create opens a return request for one delivered line item. Buyer only.
	Create(ctx context.Context, actor events.ActorIdentity, request CreateRequest) future.IFuture

	// Review approves or rejects a requested return. Vendor of the order
	// or operator.
	Review(ctx context.Context, actor events.ActorIdentity, request ReviewRequest) future.IFuture

	// Complete marks an approved return refunded. Operator only.
	Complete(ctx context.Context, actor events.ActorIdentity, requestId uint64) future.IFuture

	// Get returns the request, visible to its buyer, its vendor and
	// operators.
	Get(ctx context.Context, actor events.ActorIdentity, requestId uint64) future.IFuture

	// ListByOrder returns all requests of an order under the same
	// visibility rule.
	ListByOrder(ctx context.Context, actor events.ActorIdentity, orderId uint64) future.IFuture
}

type CreateRequest struct {
	OrderId      uint64
	ItemId       uint64
	Reason       string
	Description  string
	EvidenceURLs []string
}

type ReviewRequest struct {
	RequestId    uint64
	Approve      bool
	RefundAmount string
	Notes        string
}
