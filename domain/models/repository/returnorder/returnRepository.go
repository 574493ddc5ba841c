package return_repository

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type IReturnRepository interface {
	Save(ctx context.Context, request entities.ReturnRequest) (*entities.ReturnRequest, error)

	FindById(ctx context.Context, requestId uint64) (*entities.ReturnRequest, error)

	FindByOrderId(ctx context.Context, orderId uint64) ([]*entities.ReturnRequest, error)

	// FindActiveByItemId returns the requested or approved request for a
	// line item, nil when no such request exists.
	FindActiveByItemId(ctx context.Context, orderId, itemId uint64) (*entities.ReturnRequest, error)

	FindByFilter(ctx context.Context, supplier func() (filter interface{})) ([]*entities.ReturnRequest, error)
}
