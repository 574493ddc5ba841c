package frame

import (
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

type Builder struct {
	body   IFrameBody
	header map[string]interface{}
}

func Factory() Builder {
	builder := &Builder{}
	builder.initBuilder(nil)
	return *builder
}

func FactoryOf(frame IFrame) Builder {
	builder := &Builder{}
	builder.initBuilder(frame)
	return *builder
}

func (builder *Builder) initBuilder(frame IFrame) {
	if frame != nil {
		frameHeader := frame.Header().(*iFrameHeaderImpl)
		builder.header = deepCopy(frameHeader.header)
		builder.body = NewBodyFrom(frame.Body())
	} else {
		builder.header = make(map[string]interface{}, 16)
		builder.body = NewBody()
	}
}

func (builder Builder) SetHeader(key HeaderEnum, value interface{}) Builder {
	builder.header[string(key)] = value
	return builder
}

func (builder Builder) SetBody(body interface{}) Builder {
	builder.body.SetContent(body)
	return builder
}

func (builder Builder) SetOrderId(orderId uint64) Builder {
	builder.header[string(HeaderOrderId)] = orderId
	return builder
}

func (builder Builder) SetBuyerId(buyerId uint64) Builder {
	builder.header[string(HeaderBuyerId)] = buyerId
	return builder
}

func (builder Builder) SetVendorId(vendorId uint64) Builder {
	builder.header[string(HeaderVendorId)] = vendorId
	return builder
}

func (builder Builder) SetItemId(itemId uint64) Builder {
	builder.header[string(HeaderItemId)] = itemId
	return builder
}

func (builder Builder) SetOrder(order *entities.Order) Builder {
	builder.header[string(HeaderOrder)] = order
	return builder
}

func (builder Builder) SetCart(cart *entities.Cart) Builder {
	builder.header[string(HeaderCart)] = cart
	return builder
}

// SetEvent stores the event as the frame payload. Routing data rides in the
// header; the event being processed is the body.
func (builder Builder) SetEvent(event events.IEvent) Builder {
	builder.body.SetContent(event)
	return builder
}

func (builder Builder) SetFuture(iFuture future.IFuture) Builder {
	builder.header[string(HeaderFuture)] = iFuture
	return builder
}

func (builder Builder) Build() IFrame {
	return &iFrameImpl{NewHeader(builder.header), builder.body}
}
