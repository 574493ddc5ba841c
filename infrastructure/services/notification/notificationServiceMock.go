package notify_service

import (
	"context"
	"sync"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type iNotificationServiceMock struct {
	mutex sync.Mutex
	SMS   []SMSRequestModel
	Push  []PushRequestModel
}

func NewNotificationServiceMock() *iNotificationServiceMock {
	return &iNotificationServiceMock{}
}

func (notify *iNotificationServiceMock) NotifyBySMS(ctx context.Context, request SMSRequestModel) future.IFuture {
	notify.mutex.Lock()
	notify.SMS = append(notify.SMS, request)
	notify.mutex.Unlock()
	return future.Factory().SetCapacity(1).SetData(struct{}{}).BuildAndSend()
}

func (notify *iNotificationServiceMock) NotifyByPush(ctx context.Context, request PushRequestModel) future.IFuture {
	notify.mutex.Lock()
	notify.Push = append(notify.Push, request)
	notify.mutex.Unlock()
	return future.Factory().SetCapacity(1).SetData(struct{}{}).BuildAndSend()
}
