package events

import (
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

// Action payloads carried in IEvent.Data. Each transition that needs more
// than the (state, action, actor) triple defines its payload here so states
// can assert a concrete type instead of poking into maps.

type PlaceOrderData struct {
	Cart        *entities.Cart
	Address     entities.AddressInfo
	Buyer       entities.BuyerInfo
	Vendor      entities.VendorInfo
	PaymentMode string
}

type CancelData struct {
	Reason string
}

type RejectData struct {
	Reason string
}

type DispatchData struct {
	CourierId uint64
}

type DeliverData struct {
	OTP          string
	CODCollected bool
}

type DeliveryFailData struct {
	Reason string
}

type ReturnToVendorData struct {
	Reason string
}
