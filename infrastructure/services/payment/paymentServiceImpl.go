package payment_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type iPaymentServiceImpl struct {
	client  *http.Client
	baseUrl string
	apiKey  string
	logger  *zap.SugaredLogger
}

func NewPaymentService(baseUrl, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) IPaymentService {
	return &iPaymentServiceImpl{
		client:  &http.Client{Timeout: timeout},
		baseUrl: baseUrl,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type gatewayOrderRequest struct {
	OrderId  string `json:"orderId"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type gatewayOrderResponse struct {
	GatewayOrderId string `json:"gatewayOrderId"`
	CallbackUrl    string `json:"callbackUrl"`
}

type gatewayVerifyRequest struct {
	OrderId        string `json:"orderId"`
	GatewayOrderId string `json:"gatewayOrderId"`
	PaymentId      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

type gatewayVerifyResponse struct {
	Result    bool   `json:"result"`
	PaymentId string `json:"paymentId"`
	Reason    string `json:"reason"`
}

func (payment iPaymentServiceImpl) CreatePaymentOrder(ctx context.Context, request PaymentOrderRequest) future.IFuture {
	gatewayRequest := gatewayOrderRequest{
		OrderId:  fmt.Sprintf("%d", request.OrderId),
		Amount:   request.Amount,
		Currency: request.Currency,
	}

	var gatewayResponse gatewayOrderResponse
	if err := payment.post(ctx, "/v1/orders", gatewayRequest, &gatewayResponse); err != nil {
		payment.logger.Errorw("payment gateway create order failed",
			"fn", "CreatePaymentOrder", "oid", request.OrderId, "error", err)
		return future.Factory().SetCapacity(1).
			SetError(future.InternalError, "Unknown Error", errors.Wrap(err, "payment gateway create order failed")).
			BuildAndSend()
	}

	return future.Factory().SetCapacity(1).
		SetData(PaymentOrderResponse{
			GatewayOrderId: gatewayResponse.GatewayOrderId,
			CallbackUrl:    gatewayResponse.CallbackUrl,
		}).BuildAndSend()
}

func (payment iPaymentServiceImpl) VerifyPayment(ctx context.Context, request PaymentVerifyRequest) future.IFuture {
	gatewayRequest := gatewayVerifyRequest{
		OrderId:        fmt.Sprintf("%d", request.OrderId),
		GatewayOrderId: request.GatewayOrderId,
		PaymentId:      request.PaymentId,
		Signature:      request.Signature,
	}

	var gatewayResponse gatewayVerifyResponse
	if err := payment.post(ctx, "/v1/verify", gatewayRequest, &gatewayResponse); err != nil {
		payment.logger.Errorw("payment gateway verify failed",
			"fn", "VerifyPayment", "oid", request.OrderId, "error", err)
		return future.Factory().SetCapacity(1).
			SetError(future.InternalError, "Unknown Error", errors.Wrap(err, "payment gateway verify failed")).
			BuildAndSend()
	}

	return future.Factory().SetCapacity(1).
		SetData(PaymentVerifyResponse{
			Result:    gatewayResponse.Result,
			PaymentId: gatewayResponse.PaymentId,
			Reason:    gatewayResponse.Reason,
		}).BuildAndSend()
}

func (payment iPaymentServiceImpl) post(ctx context.Context, path string, request, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return errors.Wrap(err, "marshal request failed")
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, payment.baseUrl+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request failed")
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+payment.apiKey)

	httpResponse, err := payment.client.Do(httpRequest)
	if err != nil {
		return errors.Wrap(err, "gateway request failed")
	}
	defer func() {
		_ = httpResponse.Body.Close()
	}()

	if httpResponse.StatusCode != http.StatusOK {
		return errors.Errorf("gateway responded %d", httpResponse.StatusCode)
	}

	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return errors.Wrap(err, "decode gateway response failed")
	}
	return nil
}
