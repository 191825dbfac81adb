package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. ID 0 means the product has not been saved
// yet; the store assigns an id on insert.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string

	ImageData     []byte
	ImageMimeType string
}
