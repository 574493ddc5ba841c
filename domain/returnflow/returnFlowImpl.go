package returnflow

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	order_repository "github.com/bazario/fulfillment-service/domain/models/repository/order"
	return_repository "github.com/bazario/fulfillment-service/domain/models/repository/returnorder"
	"github.com/bazario/fulfillment-service/infrastructure/future"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	uploader_service "github.com/bazario/fulfillment-service/infrastructure/services/uploader"
)

type iReturnFlowImpl struct {
	orderRepository   order_repository.IOrderRepository
	returnRepository  return_repository.IReturnRepository
	uploaderService   uploader_service.IUploaderService
	notifyService     notify_service.INotificationService
	maxEvidenceImages int
	minReasonLength   int
	logger            *zap.SugaredLogger
}

func New(orderRepository order_repository.IOrderRepository,
	returnRepository return_repository.IReturnRepository,
	uploaderService uploader_service.IUploaderService,
	notifyService notify_service.INotificationService,
	maxEvidenceImages, minReasonLength int,
	logger *zap.SugaredLogger) IReturnFlow {
	return &iReturnFlowImpl{
		orderRepository:   orderRepository,
		returnRepository:  returnRepository,
		uploaderService:   uploaderService,
		notifyService:     notifyService,
		maxEvidenceImages: maxEvidenceImages,
		minReasonLength:   minReasonLength,
		logger:            logger,
	}
}

func (flow iReturnFlowImpl) Create(ctx context.Context, actor events.ActorIdentity, request CreateRequest) future.IFuture {
	if actor.Role != actions.Buyer {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("only buyers open return requests"))
	}

	if !entities.ValidReturnReason(request.Reason) {
		return errorFuture(future.ValidationError, "Return Reason Invalid", ErrorReasonInvalid)
	}
	if len(request.Description) < flow.minReasonLength {
		return errorFuture(future.ValidationError, "Description Too Short", ErrorDescriptionTooShort)
	}
	if len(request.EvidenceURLs) > flow.maxEvidenceImages {
		return errorFuture(future.ValidationError, "Too Many Evidence Images", ErrorTooManyEvidenceImages)
	}

	if len(request.EvidenceURLs) > 0 {
		if futureData := flow.uploaderService.ValidateURLs(ctx, request.EvidenceURLs).Get(); futureData.Error() != nil {
			return future.Factory().SetCapacity(1).SetErrorOf(futureData.Error()).BuildAndSend()
		}
	}

	order, err := flow.orderRepository.FindById(ctx, request.OrderId)
	if err != nil {
		return errorFuture(future.NotFound, "Order Not Found", err)
	}
	if order.BuyerInfo.BuyerId != actor.ID {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order belongs to another buyer"))
	}
	if order.Status != entities.OrderStatusDelivered {
		return errorFuture(future.Conflict, "Order Not Delivered", ErrorOrderNotDelivered)
	}

	item := order.FindItem(request.ItemId)
	if item == nil {
		return errorFuture(future.NotFound, "Item Not Found", errors.Errorf("item %d not in order %d", request.ItemId, request.OrderId))
	}
	if !item.ReturnEligible || item.ReturnDeadline == nil {
		return errorFuture(future.ValidationError, "Item Not Eligible", ErrorItemNotEligible)
	}
	if !time.Now().UTC().Before(*item.ReturnDeadline) {
		return errorFuture(future.NotAccepted, "Return Window Expired", ErrorReturnWindowExpired)
	}

	active, err := flow.returnRepository.FindActiveByItemId(ctx, request.OrderId, request.ItemId)
	if err != nil {
		return flow.internalError(ctx, "Create", request.OrderId, err)
	}
	if active != nil {
		return errorFuture(future.Conflict, "Active Return Request Exists", ErrorDuplicateActiveRequest)
	}

	returnRequest := entities.ReturnRequest{
		OrderId:      request.OrderId,
		ItemId:       request.ItemId,
		BuyerId:      order.BuyerInfo.BuyerId,
		VendorId:     order.VendorInfo.VendorId,
		Status:       entities.ReturnStatusRequested,
		Reason:       request.Reason,
		Description:  request.Description,
		EvidenceURLs: request.EvidenceURLs,
	}

	savedRequest, err := flow.returnRepository.Save(ctx, returnRequest)
	if err != nil {
		// the unique index catches a create that raced past the
		// FindActiveByItemId check above
		if errors.Is(err, return_repository.ErrorActiveRequestExists) {
			return errorFuture(future.Conflict, "Active Return Request Exists", ErrorDuplicateActiveRequest)
		}
		return flow.internalError(ctx, "Create", request.OrderId, err)
	}

	flow.notifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  order.VendorInfo.VendorId,
		Title:   "Return requested",
		Body:    "A buyer requested a return on order " + order.OrderNumber,
		OrderId: order.OrderId,
	})

	flow.logger.Infow("return request opened",
		"fn", "Create", "oid", request.OrderId, "iid", request.ItemId, "rid", savedRequest.RequestId)
	return future.Factory().SetCapacity(1).SetData(savedRequest).BuildAndSend()
}

func (flow iReturnFlowImpl) Review(ctx context.Context, actor events.ActorIdentity, request ReviewRequest) future.IFuture {
	returnRequest, err := flow.returnRepository.FindById(ctx, request.RequestId)
	if err != nil {
		return errorFuture(future.NotFound, "Return Request Not Found", err)
	}

	if reviewFuture := flow.checkReviewer(actor, returnRequest); reviewFuture != nil {
		return reviewFuture
	}

	if returnRequest.Status != entities.ReturnStatusRequested {
		return errorFuture(future.Conflict, "Return Request Not Actionable",
			errors.Wrapf(ErrorRequestNotActionable, "status %s", returnRequest.Status))
	}

	now := time.Now().UTC()
	if request.Approve {
		refund, refundFuture := flow.resolveRefund(ctx, returnRequest, request.RefundAmount)
		if refundFuture != nil {
			return refundFuture
		}
		returnRequest.Status = entities.ReturnStatusApproved
		returnRequest.RefundAmount = refund
	} else {
		returnRequest.Status = entities.ReturnStatusRejected
		returnRequest.ResolvedAt = &now
	}

	if actor.Role == actions.Operator {
		returnRequest.OperatorNotes = request.Notes
	} else {
		returnRequest.VendorNotes = request.Notes
	}

	savedRequest, err := flow.returnRepository.Save(ctx, *returnRequest)
	if err != nil {
		return flow.internalError(ctx, "Review", returnRequest.OrderId, err)
	}

	flow.notifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  returnRequest.BuyerId,
		Title:   "Return " + savedRequest.Status,
		Body:    "Your return request was " + savedRequest.Status,
		OrderId: returnRequest.OrderId,
	})

	flow.logger.Infow("return request reviewed",
		"fn", "Review", "rid", savedRequest.RequestId, "status", savedRequest.Status)
	return future.Factory().SetCapacity(1).SetData(savedRequest).BuildAndSend()
}

func (flow iReturnFlowImpl) Complete(ctx context.Context, actor events.ActorIdentity, requestId uint64) future.IFuture {
	if actor.Role != actions.Operator {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("only operators complete refunds"))
	}

	returnRequest, err := flow.returnRepository.FindById(ctx, requestId)
	if err != nil {
		return errorFuture(future.NotFound, "Return Request Not Found", err)
	}

	if returnRequest.Status != entities.ReturnStatusApproved {
		return errorFuture(future.Conflict, "Return Request Not Actionable",
			errors.Wrapf(ErrorRequestNotActionable, "status %s", returnRequest.Status))
	}

	now := time.Now().UTC()
	returnRequest.Status = entities.ReturnStatusCompleted
	returnRequest.ResolvedAt = &now

	savedRequest, err := flow.returnRepository.Save(ctx, *returnRequest)
	if err != nil {
		return flow.internalError(ctx, "Complete", returnRequest.OrderId, err)
	}

	flow.notifyService.NotifyByPush(ctx, notify_service.PushRequestModel{
		UserId:  returnRequest.BuyerId,
		Title:   "Refund processed",
		Body:    "Your refund of " + savedRequest.RefundAmount.Amount + " was processed",
		OrderId: returnRequest.OrderId,
	})

	flow.logger.Infow("return request completed", "fn", "Complete", "rid", savedRequest.RequestId)
	return future.Factory().SetCapacity(1).SetData(savedRequest).BuildAndSend()
}

func (flow iReturnFlowImpl) Get(ctx context.Context, actor events.ActorIdentity, requestId uint64) future.IFuture {
	returnRequest, err := flow.returnRepository.FindById(ctx, requestId)
	if err != nil {
		return errorFuture(future.NotFound, "Return Request Not Found", err)
	}
	if !canSee(actor, returnRequest.BuyerId, returnRequest.VendorId) {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("request belongs to another party"))
	}
	return future.Factory().SetCapacity(1).SetData(returnRequest).BuildAndSend()
}

func (flow iReturnFlowImpl) ListByOrder(ctx context.Context, actor events.ActorIdentity, orderId uint64) future.IFuture {
	order, err := flow.orderRepository.FindById(ctx, orderId)
	if err != nil {
		return errorFuture(future.NotFound, "Order Not Found", err)
	}
	if !canSee(actor, order.BuyerInfo.BuyerId, order.VendorInfo.VendorId) {
		return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("order belongs to another party"))
	}

	requests, err := flow.returnRepository.FindByOrderId(ctx, orderId)
	if err != nil {
		return flow.internalError(ctx, "ListByOrder", orderId, err)
	}
	return future.Factory().SetCapacity(1).SetData(requests).BuildAndSend()
}

func (flow iReturnFlowImpl) checkReviewer(actor events.ActorIdentity, request *entities.ReturnRequest) future.IFuture {
	if actor.Role == actions.Operator {
		return nil
	}
	if actor.Role == actions.Vendor && actor.ID == request.VendorId {
		return nil
	}
	return errorFuture(future.Forbidden, "Actor Not Permitted", errors.New("only the vendor or an operator reviews returns"))
}

// resolveRefund validates an explicit refund amount against the line total
// and falls back to the full line total when none is given.
func (flow iReturnFlowImpl) resolveRefund(ctx context.Context, request *entities.ReturnRequest, amount string) (*entities.Money, future.IFuture) {
	order, err := flow.orderRepository.FindById(ctx, request.OrderId)
	if err != nil {
		return nil, flow.internalError(ctx, "resolveRefund", request.OrderId, err)
	}
	item := order.FindItem(request.ItemId)
	if item == nil {
		return nil, flow.internalError(ctx, "resolveRefund", request.OrderId,
			errors.Errorf("item %d vanished from order %d", request.ItemId, request.OrderId))
	}

	lineTotal, err := decimal.NewFromString(item.Invoice.Total.Amount)
	if err != nil {
		return nil, flow.internalError(ctx, "resolveRefund", request.OrderId, err)
	}

	if amount == "" {
		return &entities.Money{Amount: lineTotal.StringFixed(2), Currency: item.Invoice.Total.Currency}, nil
	}

	refund, err := decimal.NewFromString(amount)
	if err != nil || refund.IsNegative() {
		return nil, errorFuture(future.ValidationError, "Refund Amount Invalid", errors.New("refund amount not parsable"))
	}
	if refund.GreaterThan(lineTotal) {
		return nil, errorFuture(future.ValidationError, "Refund Exceeds Line Total", ErrorRefundExceedsLineTotal)
	}
	return &entities.Money{Amount: refund.StringFixed(2), Currency: item.Invoice.Total.Currency}, nil
}

func (flow iReturnFlowImpl) internalError(ctx context.Context, fn string, orderId uint64, err error) future.IFuture {
	flow.logger.Errorw("return flow failed", "fn", fn, "oid", orderId, "error", err)
	return errorFuture(future.InternalError, "Unknown Error", err)
}

func canSee(actor events.ActorIdentity, buyerId, vendorId uint64) bool {
	switch actor.Role {
	case actions.Operator:
		return true
	case actions.Buyer:
		return actor.ID == buyerId
	case actions.Vendor:
		return actor.ID == vendorId
	}
	return false
}

func errorFuture(code future.ErrorCode, message string, reason error) future.IFuture {
	return future.Factory().SetCapacity(1).SetError(code, message, reason).BuildAndSend()
}
