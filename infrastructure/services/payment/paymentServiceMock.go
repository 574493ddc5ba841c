package payment_service

import (
	"context"
	"fmt"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type iPaymentServiceMock struct {
	VerifyResult bool
	VerifyReason string
}

func NewPaymentServiceMock() *iPaymentServiceMock {
	return &iPaymentServiceMock{VerifyResult: true}
}

func (payment iPaymentServiceMock) CreatePaymentOrder(ctx context.Context, request PaymentOrderRequest) future.IFuture {
	return future.Factory().SetCapacity(1).
		SetData(PaymentOrderResponse{
			GatewayOrderId: fmt.Sprintf("gw_%d", request.OrderId),
			CallbackUrl:    "https://gateway.example.com/pay/" + fmt.Sprintf("gw_%d", request.OrderId),
		}).BuildAndSend()
}

func (payment iPaymentServiceMock) VerifyPayment(ctx context.Context, request PaymentVerifyRequest) future.IFuture {
	return future.Factory().SetCapacity(1).
		SetData(PaymentVerifyResponse{
			Result:    payment.VerifyResult,
			PaymentId: request.PaymentId,
			Reason:    payment.VerifyReason,
		}).BuildAndSend()
}
