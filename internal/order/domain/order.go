package domain

// ShippingDetails is the address block collected at checkout. Required
// fields are enforced at the HTTP boundary, not here.
type ShippingDetails struct {
	Name string

	Line1 string
	Line2 string
	Line3 string

	City    string
	State   string
	Country string
	Zip     string

	GiftWrap bool
}
