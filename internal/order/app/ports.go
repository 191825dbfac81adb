package app

import (
	"context"

	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/order/domain"
)

// Processor turns a finalized cart plus shipping details into an
// external side effect (mail dispatch, queue publish). Implementations
// must not mutate the cart or the details, and must wrap transport
// failures in ErrDelivery.
type Processor interface {
	ProcessOrder(ctx context.Context, c *cart.Cart, details domain.ShippingDetails) error
}
