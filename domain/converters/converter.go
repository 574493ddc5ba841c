package converters

import (
	"time"

	"github.com/devfeel/mapper"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

// View models are the transport-facing shape of the domain entities. The
// delivery otp is stripped unless the caller may see it; vendors never
// receive it.

type OrderView struct {
	OrderId         uint64              `json:"orderId"`
	OrderNumber     string              `json:"orderNumber"`
	Status          string              `json:"status"`
	BuyerId         uint64              `json:"buyerId"`
	VendorId        uint64              `json:"vendorId"`
	CourierId       uint64              `json:"courierId,omitempty"`
	ShippingAddress AddressView         `json:"shippingAddress"`
	Invoice         entities.Invoice    `json:"invoice"`
	PaymentMode     string              `json:"paymentMode"`
	PaymentStatus   string              `json:"paymentStatus"`
	IsCancellable   bool                `json:"isCancellable"`
	DeliveryOTP     string              `json:"deliveryOtp,omitempty"`
	Items           []ItemView          `json:"items"`
	Attempts        []AttemptView       `json:"attempts"`
	CancelReason    string              `json:"cancelReason,omitempty"`
	ReturnReason    string              `json:"returnReason,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	ConfirmedAt     *time.Time          `json:"confirmedAt,omitempty"`
	PackedAt        *time.Time          `json:"packedAt,omitempty"`
	DispatchedAt    *time.Time          `json:"dispatchedAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CanceledAt      *time.Time          `json:"canceledAt,omitempty"`
}

type ItemView struct {
	ItemId           uint64               `json:"itemId"`
	InventoryId      string               `json:"inventoryId"`
	Title            string               `json:"title"`
	Brand            string               `json:"brand,omitempty"`
	Category         string               `json:"category,omitempty"`
	Image            string               `json:"image,omitempty"`
	Quantity         int32                `json:"quantity"`
	ReturnEligible   bool                 `json:"returnEligible"`
	ReturnWindowDays int32                `json:"returnWindowDays"`
	ReturnDeadline   *time.Time           `json:"returnDeadline,omitempty"`
	Invoice          entities.ItemInvoice `json:"invoice"`
}

type AddressView struct {
	AddressId     uint64 `json:"addressId"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Address       string `json:"address"`
	Phone         string `json:"phone,omitempty"`
	Mobile        string `json:"mobile,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city"`
	Province      string `json:"province,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	ZipCode       string `json:"zipCode,omitempty"`
}

type AttemptView struct {
	AttemptNumber int32      `json:"attemptNumber"`
	Outcome       string     `json:"outcome"`
	FailureReason string     `json:"failureReason,omitempty"`
	CODCollected  bool       `json:"codCollected"`
	CreatedAt     time.Time  `json:"createdAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
}

type ReturnRequestView struct {
	RequestId     uint64          `json:"requestId"`
	OrderId       uint64          `json:"orderId"`
	ItemId        uint64          `json:"itemId"`
	Status        string          `json:"status"`
	Reason        string          `json:"reason"`
	Description   string          `json:"description"`
	EvidenceURLs  []string        `json:"evidenceUrls,omitempty"`
	RefundAmount  *entities.Money `json:"refundAmount,omitempty"`
	VendorNotes   string          `json:"vendorNotes,omitempty"`
	OperatorNotes string          `json:"operatorNotes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"`
}

func init() {
	mapper.Register(&entities.Order{})
	mapper.Register(&OrderView{})
	mapper.Register(&entities.Item{})
	mapper.Register(&ItemView{})
	mapper.Register(&entities.AddressInfo{})
	mapper.Register(&AddressView{})
	mapper.Register(&entities.DeliveryAttempt{})
	mapper.Register(&AttemptView{})
	mapper.Register(&entities.ReturnRequest{})
	mapper.Register(&ReturnRequestView{})
}

// ToOrderView flattens an order for transport. includeOTP controls whether
// the delivery otp survives the conversion.
func ToOrderView(order *entities.Order, includeOTP bool) (*OrderView, error) {
	view := &OrderView{}
	if err := mapper.AutoMapper(order, view); err != nil {
		return nil, err
	}

	view.BuyerId = order.BuyerInfo.BuyerId
	view.VendorId = order.VendorInfo.VendorId
	view.IsCancellable = order.IsCancellable()

	if err := mapper.AutoMapper(&order.ShippingAddress, &view.ShippingAddress); err != nil {
		return nil, err
	}

	view.Items = make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		itemView := ItemView{}
		if err := mapper.AutoMapper(item, &itemView); err != nil {
			return nil, err
		}
		view.Items = append(view.Items, itemView)
	}

	view.Attempts = make([]AttemptView, 0, len(order.Attempts))
	for i := range order.Attempts {
		attemptView := AttemptView{}
		if err := mapper.AutoMapper(&order.Attempts[i], &attemptView); err != nil {
			return nil, err
		}
		view.Attempts = append(view.Attempts, attemptView)
	}

	if !includeOTP {
		view.DeliveryOTP = ""
	}
	return view, nil
}

func ToOrderViews(orders []*entities.Order, includeOTP bool) ([]*OrderView, error) {
	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := ToOrderView(order, includeOTP)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func ToReturnRequestView(request *entities.ReturnRequest) (*ReturnRequestView, error) {
	view := &ReturnRequestView{}
	if err := mapper.AutoMapper(request, view); err != nil {
		return nil, err
	}
	return view, nil
}

func ToReturnRequestViews(requests []*entities.ReturnRequest) ([]*ReturnRequestView, error) {
	views := make([]*ReturnRequestView, 0, len(requests))
	for _, request := range requests {
		view, err := ToReturnRequestView(request)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
