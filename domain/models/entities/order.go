package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DocumentVersion string = "1.0.0"
)

// Order statuses form a closed set; transitions between them are owned by
// the flow manager, nothing else may write Status.
const (
	OrderStatusPlaced           string = "placed"
	OrderStatusConfirmed        string = "confirmed"
	OrderStatusPicked           string = "picked"
	OrderStatusPacked           string = "packed"
	OrderStatusOutForDelivery   string = "out_for_delivery"
	OrderStatusDelivered        string = "delivered"
	OrderStatusCanceled         string = "cancelled"
	OrderStatusReturnedToVendor string = "returned_to_vendor"
)

const (
	PaymentModeCOD    string = "cod"
	PaymentModeOnline string = "online"
)

const (
	PaymentStatusPending     string = "pending"
	PaymentStatusPaid        string = "paid"
	PaymentStatusFailed      string = "failed"
	PaymentStatusCollected   string = "collected"
	PaymentStatusUncollected string = "uncollected"
)

const (
	AttemptOutcomeInTransit string = "in_transit"
	AttemptOutcomeDelivered string = "delivered"
	AttemptOutcomeFailed    string = "failed"
)

type Order struct {
	ID              primitive.ObjectID `bson:"-"`
	OrderId         uint64             `bson:"orderId"`
	OrderNumber     string             `bson:"orderNumber"`
	Version         uint64             `bson:"version"`
	DocVersion      string             `bson:"docVersion"`
	Status          string             `bson:"status"`
	BuyerInfo       BuyerInfo          `bson:"buyerInfo"`
	VendorInfo      VendorInfo         `bson:"vendorInfo"`
	CourierId       uint64             `bson:"courierId"`
	ShippingAddress AddressInfo        `bson:"shippingAddress"`
	Invoice         Invoice            `bson:"invoice"`
	PaymentMode     string             `bson:"paymentMode"`
	PaymentStatus   string             `bson:"paymentStatus"`
	Payment         *PaymentInfo       `bson:"payment"`
	DeliveryOTP     string             `bson:"deliveryOtp"`
	Items           []*Item            `bson:"items"`
	Attempts        []DeliveryAttempt  `bson:"attempts"`
	CancelReason    string             `bson:"cancelReason"`
	ReturnReason    string             `bson:"returnReason"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
	ConfirmedAt     *time.Time         `bson:"confirmedAt"`
	PackedAt        *time.Time         `bson:"packedAt"`
	DispatchedAt    *time.Time         `bson:"dispatchedAt"`
	DeliveredAt     *time.Time         `bson:"deliveredAt"`
	CanceledAt      *time.Time         `bson:"canceledAt"`
}

// Invoice is a frozen snapshot of the cart pricing at placement time.
// grandTotal = subtotal + deliveryFee - discount + tax
type Invoice struct {
	GrandTotal  Money          `bson:"grandTotal" json:"grandTotal"`
	Subtotal    Money          `bson:"subtotal" json:"subtotal"`
	DeliveryFee Money          `bson:"deliveryFee" json:"deliveryFee"`
	Discount    Money          `bson:"discount" json:"discount"`
	Tax         Money          `bson:"tax" json:"tax"`
	Coupon      *AppliedCoupon `bson:"coupon" json:"coupon"`
}

// AppliedCoupon binds a coupon code to the discount it produced against a
// specific cart snapshot; a cart mutation invalidates the binding.
type AppliedCoupon struct {
	Code      string     `bson:"code" json:"code"`
	Type      string     `bson:"type" json:"type"`
	Percent   float64    `bson:"percent" json:"percent"`
	Price     *Money     `bson:"price" json:"price"`
	AppliedAt *time.Time `bson:"appliedAt" json:"appliedAt"`
}

type PaymentInfo struct {
	GatewayOrderId string     `bson:"gatewayOrderId"`
	Signature      string     `bson:"signature"`
	Price          *Money     `bson:"price"`
	Result         bool       `bson:"result"`
	Reason         string     `bson:"reason"`
	CreatedAt      time.Time  `bson:"createdAt"`
	VerifiedAt     *time.Time `bson:"verifiedAt"`
}

// DeliveryAttempt records are append-only; each entry to the delivery
// protocol (first dispatch and every retry) appends one.
type DeliveryAttempt struct {
	AttemptNumber int32      `bson:"attemptNumber"`
	Outcome       string     `bson:"outcome"`
	FailureReason string     `bson:"failureReason"`
	CODCollected  bool       `bson:"codCollected"`
	CreatedAt     time.Time  `bson:"createdAt"`
	EndedAt       *time.Time `bson:"endedAt"`
}

type Money struct {
	Amount   string `bson:"amount" json:"amount"`
	Currency string `bson:"cur" json:"currency"`
}

// IsCancellable reports whether a buyer cancellation is still permitted;
// only pre-pick states qualify.
func (order Order) IsCancellable() bool {
	return order.Status == OrderStatusPlaced || order.Status == OrderStatusConfirmed
}

func (order Order) IsTerminal() bool {
	return order.Status == OrderStatusDelivered ||
		order.Status == OrderStatusCanceled ||
		order.Status == OrderStatusReturnedToVendor
}

func (order Order) FindItem(itemId uint64) *Item {
	for i := 0; i < len(order.Items); i++ {
		if order.Items[i].ItemId == itemId {
			return order.Items[i]
		}
	}
	return nil
}

func (order Order) LastAttempt() *DeliveryAttempt {
	if len(order.Attempts) == 0 {
		return nil
	}
	return &order.Attempts[len(order.Attempts)-1]
}

func (order Order) IsIdEmpty() bool {
	for _, v := range order.ID {
		if v != 0 {
			return false
		}
	}
	return true
}

func GenerateOrderId() uint64 {
	var err error
	var bytes []byte
	var orderId uint32
	for {
		bytes, err = uuid.New().MarshalBinary()
		if err == nil {
			orderId = byteToHash(bytes)
			break
		}
	}
	return uint64(orderId)
}

// GenerateOrderNumber renders the externally visible identity of an order.
func GenerateOrderNumber(orderId uint64) string {
	return fmt.Sprintf("ORD-%010d", orderId)
}

func byteToHash(bytes []byte) uint32 {
	var h uint32 = 0
	for _, val := range bytes {
		h = 31*h + uint32(val&0xff)
	}
	return h
}
