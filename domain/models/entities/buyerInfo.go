package entities

type BuyerInfo struct {
	BuyerId   uint64 `bson:"buyerId"`
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
	Phone     string `bson:"phone"`
	Mobile    string `bson:"mobile"`
	Email     string `bson:"email"`
	IP        string `bson:"ip"`
}

type VendorInfo struct {
	VendorId    uint64 `bson:"vendorId"`
	DisplayName string `bson:"displayName"`
	Phone       string `bson:"phone"`
	Email       string `bson:"email"`
}
