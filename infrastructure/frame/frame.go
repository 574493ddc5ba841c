package frame

type HeaderEnum string

const (
	HeaderOrder       HeaderEnum = "ORDER"
	HeaderOrderId     HeaderEnum = "ORDER_ID"
	HeaderBuyerId     HeaderEnum = "BUYER_ID"
	HeaderVendorId    HeaderEnum = "VENDOR_ID"
	HeaderItemId      HeaderEnum = "ITEM_ID"
	HeaderCart        HeaderEnum = "CART"
	HeaderFuture      HeaderEnum = "FUTURE"
	HeaderFutureError HeaderEnum = "FUTURE_ERROR"
)

type IFrame interface {
	Header() IFrameHeader
	Body() IFrameBody
	Copy() IFrame
	CopyFrom(iFrame IFrame)
}

type IFrameHeader interface {
	KeyExists(key string) bool
	Value(key string) interface{}
	Copy() IFrameHeader
	CopyFrom(header IFrameHeader)
	CopyIfAbsent(header IFrameHeader)
}

type IFrameBody interface {
	SetContent(body interface{})
	Content() interface{}
	Copy() IFrameBody
	CopyFrom(body IFrameBody)
}
