package app

import (
	"context"

	"github.com/dwikikusuma/sportsstore/internal/catalog/domain"
)

type ProductRepo interface {
	// List returns every product, image blobs excluded. Order is up to
	// the store; callers sort before paginating.
	List(ctx context.Context) ([]domain.Product, error)

	// Get returns the product with the given id, image included.
	Get(ctx context.Context, id int64) (domain.Product, error)

	// Save inserts p when its ID is 0 and returns it with the assigned
	// id. For a nonzero ID it updates name, description, price and
	// category of the matching row; an unknown id is a no-op.
	Save(ctx context.Context, p domain.Product) (domain.Product, error)

	// UpdateImage replaces the image blob and mime type of a product.
	UpdateImage(ctx context.Context, id int64, data []byte, mimeType string) error

	// Delete removes the product and returns what was deleted.
	Delete(ctx context.Context, id int64) (domain.Product, error)
}
