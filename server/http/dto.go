package http_server

import (
	"github.com/bazario/fulfillment-service/domain/converters"
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

type AddItemRequest struct {
	VendorId         uint64         `json:"vendorId"`
	InventoryId      string         `json:"inventoryId"`
	Title            string         `json:"title"`
	Brand            string         `json:"brand"`
	Category         string         `json:"category"`
	Image            string         `json:"image"`
	SellUnit         string         `json:"sellUnit"`
	UnitPrice        entities.Money `json:"unitPrice"`
	Quantity         int32          `json:"quantity"`
	ReturnEligible   bool           `json:"returnEligible"`
	ReturnWindowDays int32          `json:"returnWindowDays"`
}

type QuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type CouponRequest struct {
	Code string `json:"code"`
}

type CheckoutRequest struct {
	AddressId   uint64 `json:"addressId"`
	PaymentMode string `json:"paymentMode"`
}

type PaymentCallbackRequest struct {
	GatewayOrderId string `json:"gatewayOrderId"`
	PaymentId      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type DispatchRequest struct {
	CourierId uint64 `json:"courierId"`
}

type DeliverRequest struct {
	OTP          string `json:"otp"`
	CODCollected bool   `json:"codCollected"`
}

type CreateReturnRequest struct {
	ItemId       uint64   `json:"itemId"`
	Reason       string   `json:"reason"`
	Description  string   `json:"description"`
	EvidenceURLs []string `json:"evidenceUrls"`
}

type ReviewReturnRequest struct {
	Approve      bool   `json:"approve"`
	RefundAmount string `json:"refundAmount"`
	Notes        string `json:"notes"`
}

type OrderListResponse struct {
	Orders     []*converters.OrderView `json:"orders"`
	Page       int64                   `json:"page"`
	PerPage    int64                   `json:"perPage"`
	TotalCount int64                   `json:"totalCount"`
}
