package address_service

import (
	"context"

	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

// IAddressService resolves a buyer's saved address from the address book
// service. The address snapshot is frozen onto the order at placement.
type IAddressService interface {
	// GetAddress returns entities.AddressInfo through the future.
	GetAddress(ctx context.Context, buyerId uint64, addressId uint64) future.IFuture
}

type iAddressServiceMock struct {
	Addresses map[uint64]entities.AddressInfo
}

func NewAddressServiceMock() *iAddressServiceMock {
	return &iAddressServiceMock{Addresses: make(map[uint64]entities.AddressInfo, 4)}
}

func (address iAddressServiceMock) GetAddress(ctx context.Context, buyerId uint64, addressId uint64) future.IFuture {
	info, ok := address.Addresses[addressId]
	if !ok {
		return future.Factory().SetCapacity(1).
			SetError(future.NotFound, "Address Not Found", nil).
			BuildAndSend()
	}
	return future.Factory().SetCapacity(1).SetData(info).BuildAndSend()
}
