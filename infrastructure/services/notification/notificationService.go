package notify_service

import (
	"context"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

const (
	SMSRequest  string = "sms"
	PushRequest string = "push"
)

// INotificationService delivers order lifecycle notifications to buyers,
// vendors and couriers. Delivery is best effort; order processing never
// blocks on notification outcome.
type INotificationService interface {
	NotifyBySMS(ctx context.Context, request SMSRequestModel) future.IFuture
	NotifyByPush(ctx context.Context, request PushRequestModel) future.IFuture
}

type SMSRequestModel struct {
	Phone   string
	Body    string
	OrderId uint64
}

type PushRequestModel struct {
	UserId  uint64
	Title   string
	Body    string
	OrderId uint64
}
