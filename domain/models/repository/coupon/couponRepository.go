package coupon_repository

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type ICouponRepository interface {
	Save(ctx context.Context, coupon entities.Coupon) (*entities.Coupon, error)

	FindByCode(ctx context.Context, code string) (*entities.Coupon, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)
}
