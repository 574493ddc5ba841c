package notify_service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type iNotificationServiceImpl struct {
	client  *http.Client
	baseUrl string
	logger  *zap.SugaredLogger
}

func NewNotificationService(baseUrl string, timeout time.Duration, logger *zap.SugaredLogger) INotificationService {
	return &iNotificationServiceImpl{
		client:  &http.Client{Timeout: timeout},
		baseUrl: baseUrl,
		logger:  logger,
	}
}

func (notify iNotificationServiceImpl) NotifyBySMS(ctx context.Context, request SMSRequestModel) future.IFuture {
	if err := notify.post(ctx, "/v1/sms", request); err != nil {
		notify.logger.Errorw("sms notification failed",
			"fn", "NotifyBySMS", "oid", request.OrderId, "error", err)
		return future.Factory().SetCapacity(1).
			SetError(future.InternalError, "Unknown Error", errors.Wrap(err, "sms notification failed")).
			BuildAndSend()
	}
	return future.Factory().SetCapacity(1).SetData(struct{}{}).BuildAndSend()
}

func (notify iNotificationServiceImpl) NotifyByPush(ctx context.Context, request PushRequestModel) future.IFuture {
	if err := notify.post(ctx, "/v1/push", request); err != nil {
		notify.logger.Errorw("push notification failed",
			"fn", "NotifyByPush", "oid", request.OrderId, "uid", request.UserId, "error", err)
		return future.Factory().SetCapacity(1).
			SetError(future.InternalError, "Unknown Error", errors.Wrap(err, "push notification failed")).
			BuildAndSend()
	}
	return future.Factory().SetCapacity(1).SetData(struct{}{}).BuildAndSend()
}

func (notify iNotificationServiceImpl) post(ctx context.Context, path string, request interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return errors.Wrap(err, "marshal request failed")
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, notify.baseUrl+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request failed")
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := notify.client.Do(httpRequest)
	if err != nil {
		return errors.Wrap(err, "notification request failed")
	}
	defer func() {
		_ = httpResponse.Body.Close()
	}()

	if httpResponse.StatusCode != http.StatusOK {
		return errors.Errorf("notification service responded %d", httpResponse.StatusCode)
	}
	return nil
}
