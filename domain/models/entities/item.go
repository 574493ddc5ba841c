package entities

import (
	"time"
)

// Item is an order line item, owned exclusively by its Order.
type Item struct {
	ItemId           uint64      `bson:"itemId"`
	InventoryId      string      `bson:"inventoryId"`
	Title            string      `bson:"title"`
	Brand            string      `bson:"brand"`
	Category         string      `bson:"category"`
	Image            string      `bson:"image"`
	SellUnit         string      `bson:"sellUnit"`
	Quantity         int32       `bson:"quantity"`
	ReturnEligible   bool        `bson:"returnEligible"`
	ReturnWindowDays int32       `bson:"returnWindowDays"`
	ReturnDeadline   *time.Time  `bson:"returnDeadline"`
	Invoice          ItemInvoice `bson:"invoice"`
	CreatedAt        time.Time   `bson:"createdAt"`
	UpdatedAt        time.Time   `bson:"updatedAt"`
}

type ItemInvoice struct {
	Unit     Money `bson:"unit"`
	Total    Money `bson:"total"`
	Original Money `bson:"original"`
}
