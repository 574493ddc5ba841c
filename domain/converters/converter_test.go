package converters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

func sampleOrder() *entities.Order {
	now := time.Now().UTC()
	delivered := now.Add(2 * time.Hour)
	return &entities.Order{
		OrderId:     7700001,
		OrderNumber: "ORD-0007700001",
		Status:      entities.OrderStatusDelivered,
		BuyerInfo:   entities.BuyerInfo{BuyerId: 1000001, Mobile: "+911234567890"},
		VendorInfo:  entities.VendorInfo{VendorId: 2000001, DisplayName: "Acme Traders"},
		CourierId:   4000001,
		ShippingAddress: entities.AddressInfo{
			AddressId: 42,
			Address:   "12 Hill Road",
			City:      "Mumbai",
		},
		Invoice: entities.Invoice{
			GrandTotal: entities.Money{Amount: "530.00", Currency: "INR"},
			Subtotal:   entities.Money{Amount: "500.00", Currency: "INR"},
		},
		PaymentMode:   entities.PaymentModeCOD,
		PaymentStatus: entities.PaymentStatusCollected,
		DeliveryOTP:   "4821",
		Items: []*entities.Item{
			{
				ItemId:         88001,
				InventoryId:    "1111-trousers",
				Title:          "trousers",
				Quantity:       1,
				ReturnEligible: true,
				Invoice: entities.ItemInvoice{
					Unit:  entities.Money{Amount: "200.00", Currency: "INR"},
					Total: entities.Money{Amount: "200.00", Currency: "INR"},
				},
			},
		},
		Attempts: []entities.DeliveryAttempt{
			{AttemptNumber: 1, Outcome: entities.AttemptOutcomeDelivered, CODCollected: true, CreatedAt: now},
		},
		CreatedAt:   now,
		UpdatedAt:   now,
		DeliveredAt: &delivered,
	}
}

func TestToOrderViewCarriesOTPForCouriers(t *testing.T) {
	view, err := ToOrderView(sampleOrder(), true)
	require.Nil(t, err)

	assert.Equal(t, uint64(7700001), view.OrderId)
	assert.Equal(t, "ORD-0007700001", view.OrderNumber)
	assert.Equal(t, "4821", view.DeliveryOTP)
	assert.Equal(t, uint64(1000001), view.BuyerId)
	assert.Equal(t, uint64(2000001), view.VendorId)
	assert.Equal(t, "Mumbai", view.ShippingAddress.City)
	assert.False(t, view.IsCancellable)
	assert.Equal(t, "530.00", view.Invoice.GrandTotal.Amount)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "1111-trousers", view.Items[0].InventoryId)
	assert.Equal(t, "200.00", view.Items[0].Invoice.Total.Amount)

	require.Len(t, view.Attempts, 1)
	assert.Equal(t, entities.AttemptOutcomeDelivered, view.Attempts[0].Outcome)
	assert.True(t, view.Attempts[0].CODCollected)
}

func TestToOrderViewStripsOTPForVendors(t *testing.T) {
	view, err := ToOrderView(sampleOrder(), false)
	require.Nil(t, err)
	assert.Empty(t, view.DeliveryOTP)
}

func TestToReturnRequestView(t *testing.T) {
	now := time.Now().UTC()
	request := &entities.ReturnRequest{
		RequestId:    9900001,
		OrderId:      7700001,
		ItemId:       88001,
		Status:       entities.ReturnStatusApproved,
		Reason:       entities.ReturnReasonDamaged,
		Description:  "seam ripped on first wear",
		RefundAmount: &entities.Money{Amount: "200.00", Currency: "INR"},
		CreatedAt:    now,
	}

	view, err := ToReturnRequestView(request)
	require.Nil(t, err)
	assert.Equal(t, uint64(9900001), view.RequestId)
	assert.Equal(t, entities.ReturnStatusApproved, view.Status)
	require.NotNil(t, view.RefundAmount)
	assert.Equal(t, "200.00", view.RefundAmount.Amount)
}
