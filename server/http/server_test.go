package http_server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/configs"
	"github.com/bazario/fulfillment-service/domain"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/converters"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

const testSecret = "test-secret"

type stubFlowManager struct {
	order *entities.Order
}

func (stub stubFlowManager) PlaceOrder(ctx context.Context, actor events.ActorIdentity, data events.PlaceOrderData) future.IFuture {
	return future.Factory().SetCapacity(1).SetData(stub.order).BuildAndSend()
}

func (stub stubFlowManager) Handle(ctx context.Context, event events.IEvent) future.IFuture {
	return future.Factory().SetCapacity(1).SetData(stub.order).BuildAndSend()
}

func (stub stubFlowManager) PaymentCallback(ctx context.Context, actor events.ActorIdentity, request domain.PaymentCallbackRequest) future.IFuture {
	return future.Factory().SetCapacity(1).SetData(stub.order).BuildAndSend()
}

func (stub stubFlowManager) GetOrder(ctx context.Context, actor events.ActorIdentity, orderId uint64) future.IFuture {
	return future.Factory().SetCapacity(1).SetData(stub.order).BuildAndSend()
}

func (stub stubFlowManager) ListOrders(ctx context.Context, actor events.ActorIdentity, page, perPage int64) future.IFuture {
	return future.Factory().SetCapacity(1).SetData(domain.OrderPage{
		Orders: []*entities.Order{stub.order}, Page: page, PerPage: perPage, TotalCount: 1,
	}).BuildAndSend()
}

func testServer(t *testing.T) *Server {
	t.Helper()
	app.Globals.Logger = zap.NewNop().Sugar()

	config := &configs.Config{}
	config.JWT.Secret = testSecret

	order := &entities.Order{
		OrderId:     7700001,
		OrderNumber: "ORD-0007700001",
		Status:      entities.OrderStatusOutForDelivery,
		BuyerInfo:   entities.BuyerInfo{BuyerId: 1000001},
		VendorInfo:  entities.VendorInfo{VendorId: 2000001},
		CourierId:   4000001,
		DeliveryOTP: "4821",
	}
	return New(config, stubFlowManager{order: order}, nil, nil)
}

func token(t *testing.T, userId uint64, role actions.ActionType) string {
	t.Helper()
	signed, err := GenerateToken(testSecret, userId, role, time.Hour)
	require.Nil(t, err)
	return "Bearer " + signed
}

func doRequest(server *Server, method, target, auth string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}
	recorder := httptest.NewRecorder()
	server.Echo().ServeHTTP(recorder, request)
	return recorder
}

func TestAuthRequired(t *testing.T) {
	server := testServer(t)

	recorder := doRequest(server, http.MethodGet, "/api/v1/orders/7700001", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doRequest(server, http.MethodGet, "/api/v1/orders/7700001", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRoleGatedRoutes(t *testing.T) {
	server := testServer(t)

	// buyer token on a vendor route
	recorder := doRequest(server, http.MethodGet, "/api/v1/vendor/orders/7700001",
		token(t, 1000001, actions.Buyer))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(server, http.MethodGet, "/api/v1/vendor/orders/7700001",
		token(t, 2000001, actions.Vendor))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestOTPVisibilityPerRole(t *testing.T) {
	server := testServer(t)

	decode := func(recorder *httptest.ResponseRecorder) converters.OrderView {
		view := converters.OrderView{}
		require.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &view))
		return view
	}

	recorder := doRequest(server, http.MethodGet, "/api/v1/orders/7700001",
		token(t, 1000001, actions.Buyer))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "4821", decode(recorder).DeliveryOTP)

	recorder = doRequest(server, http.MethodGet, "/api/v1/courier/orders/7700001",
		token(t, 4000001, actions.Courier))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "4821", decode(recorder).DeliveryOTP)

	recorder = doRequest(server, http.MethodGet, "/api/v1/vendor/orders/7700001",
		token(t, 2000001, actions.Vendor))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decode(recorder).DeliveryOTP)

	recorder = doRequest(server, http.MethodGet, "/api/v1/operator/orders/7700001",
		token(t, 1, actions.Operator))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decode(recorder).DeliveryOTP)
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	server := testServer(t)

	recorder := doRequest(server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(server, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
