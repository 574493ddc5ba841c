package payment_service

import (
	"context"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

// IPaymentService fronts the payment gateway. Online orders create a
// gateway payment order at checkout and verify the gateway signature on
// the payment callback.
type IPaymentService interface {
	// CreatePaymentOrder returns PaymentOrderResponse through the future.
	CreatePaymentOrder(ctx context.Context, request PaymentOrderRequest) future.IFuture

	// VerifyPayment returns PaymentVerifyResponse through the future.
	VerifyPayment(ctx context.Context, request PaymentVerifyRequest) future.IFuture
}

type PaymentOrderRequest struct {
	OrderId  uint64
	Amount   string
	Currency string
}

type PaymentOrderResponse struct {
	GatewayOrderId string
	CallbackUrl    string
}

type PaymentVerifyRequest struct {
	OrderId        uint64
	GatewayOrderId string
	PaymentId      string
	Signature      string
}

type PaymentVerifyResponse struct {
	Result    bool
	PaymentId string
	Reason    string
}
