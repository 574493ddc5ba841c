package cart_repository

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type ICartRepository interface {
	Save(ctx context.Context, cart entities.Cart) (*entities.Cart, error)

	// FindByBuyerId returns the buyer's cart, nil when the buyer has none.
	FindByBuyerId(ctx context.Context, buyerId uint64) (*entities.Cart, error)

	DeleteByBuyerId(ctx context.Context, buyerId uint64) error
}
