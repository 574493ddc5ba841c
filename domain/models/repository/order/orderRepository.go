package order_repository

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type IOrderRepository interface {
	Save(ctx context.Context, order entities.Order) (*entities.Order, error)

	Insert(ctx context.Context, order entities.Order) (*entities.Order, error)

	FindById(ctx context.Context, orderId uint64) (*entities.Order, error)

	FindByFilter(ctx context.Context, supplier func() (filter interface{})) ([]*entities.Order, error)

	FindByFilterWithPage(ctx context.Context, supplier func() (filter interface{}), page, perPage int64) ([]*entities.Order, int64, error)

	ExistsById(ctx context.Context, orderId uint64) (bool, error)

	Count(ctx context.Context) (int64, error)
}
