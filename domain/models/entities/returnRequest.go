package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReturnStatusRequested string = "requested"
	ReturnStatusApproved  string = "approved"
	ReturnStatusRejected  string = "rejected"
	ReturnStatusCompleted string = "completed"
)

const (
	ReturnReasonDamaged   string = "damaged"
	ReturnReasonWrongItem string = "wrong_item"
	ReturnReasonQuality   string = "quality"
	ReturnReasonOther     string = "other"
)

// ReturnRequest references exactly one order line item. At most one active
// (requested or approved) request may exist per line item.
type ReturnRequest struct {
	ID            primitive.ObjectID `bson:"-"`
	RequestId     uint64             `bson:"requestId"`
	OrderId       uint64             `bson:"orderId"`
	ItemId        uint64             `bson:"itemId"`
	BuyerId       uint64             `bson:"buyerId"`
	VendorId      uint64             `bson:"vendorId"`
	Version       uint64             `bson:"version"`
	Status        string             `bson:"status"`
	Reason        string             `bson:"reason"`
	Description   string             `bson:"description"`
	EvidenceURLs  []string           `bson:"evidenceUrls"`
	RefundAmount  *Money             `bson:"refundAmount"`
	VendorNotes   string             `bson:"vendorNotes"`
	OperatorNotes string             `bson:"operatorNotes"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	ResolvedAt    *time.Time         `bson:"resolvedAt"`
}

func (request ReturnRequest) IsActive() bool {
	return request.Status == ReturnStatusRequested || request.Status == ReturnStatusApproved
}

func ValidReturnReason(reason string) bool {
	switch reason {
	case ReturnReasonDamaged, ReturnReasonWrongItem, ReturnReasonQuality, ReturnReasonOther:
		return true
	}
	return false
}

func GenerateRequestId() uint64 {
	return GenerateOrderId()
}
