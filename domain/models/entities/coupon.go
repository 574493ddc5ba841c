package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CouponTypePercent string = "percent"
	CouponTypeFixed   string = "fixed"
)

// Coupon is a vendor/campaign discount definition. The discount a coupon
// yields is never stored on the coupon itself; it is recomputed against the
// current cart subtotal on every pricing pass.
type Coupon struct {
	ID             primitive.ObjectID `bson:"-"`
	Code           string             `bson:"code"`
	Type           string             `bson:"type"`
	Percent        float64            `bson:"percent"`
	Value          Money              `bson:"value"`
	MaxDiscount    Money              `bson:"maxDiscount"`
	MinBasketValue Money              `bson:"minBasketValue"`
	VendorId       uint64             `bson:"vendorId"`
	StartDate      time.Time          `bson:"startDate"`
	EndDate        time.Time          `bson:"endDate"`
	Enabled        bool               `bson:"enabled"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (coupon Coupon) IsIdEmpty() bool {
	for _, v := range coupon.ID {
		if v != 0 {
			return false
		}
	}
	return true
}

func (coupon Coupon) IsActive(at time.Time) bool {
	return coupon.Enabled && !at.Before(coupon.StartDate) && at.Before(coupon.EndDate)
}
