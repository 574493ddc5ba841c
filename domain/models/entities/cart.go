package entities

import (
	"time"
)

// Cart is the mutable pre-order basket of a single buyer. It lives in the
// cart store keyed by buyer id; successful placement clears it.
type Cart struct {
	BuyerId   uint64         `json:"buyerId"`
	VendorId  uint64         `json:"vendorId"`
	Items     []*CartItem    `json:"items"`
	Coupon    *AppliedCoupon `json:"coupon"`
	Invoice   Invoice        `json:"invoice"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CartItem struct {
	InventoryId      string `json:"inventoryId"`
	Title            string `json:"title"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	Image            string `json:"image"`
	SellUnit         string `json:"sellUnit"`
	UnitPrice        Money  `json:"unitPrice"`
	Quantity         int32  `json:"quantity"`
	ReturnEligible   bool   `json:"returnEligible"`
	ReturnWindowDays int32  `json:"returnWindowDays"`
}

func (cart Cart) IsEmpty() bool {
	return len(cart.Items) == 0
}

func (cart Cart) FindItem(inventoryId string) *CartItem {
	for i := 0; i < len(cart.Items); i++ {
		if cart.Items[i].InventoryId == inventoryId {
			return cart.Items[i]
		}
	}
	return nil
}
