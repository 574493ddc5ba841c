package entities

// AddressInfo is snapshotted into an order by value at placement time so
// later address book edits never alter order history.
type AddressInfo struct {
	AddressId     uint64    `bson:"addressId"`
	FirstName     string    `bson:"firstName"`
	LastName      string    `bson:"lastName"`
	Address       string    `bson:"address"`
	Phone         string    `bson:"phone"`
	Mobile        string    `bson:"mobile"`
	Country       string    `bson:"country"`
	City          string    `bson:"city"`
	Province      string    `bson:"province"`
	Neighbourhood string    `bson:"neighbourhood"`
	Location      *Location `bson:"location"`
	ZipCode       string    `bson:"zipCode"`
}

type Location struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}
