package app

import (
	"context"
	"errors"
	"log/slog"

	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/order/domain"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrDelivery wraps transport or filesystem failures while
	// dispatching an order.
	ErrDelivery = errors.New("order delivery failed")
)

type Service struct {
	proc Processor
	log  *slog.Logger
}

func NewService(proc Processor, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		proc: proc,
		log:  log,
	}
}

// Checkout dispatches the order through the configured processor. An
// empty cart is refused before the processor is ever invoked; a valid
// cart is forwarded exactly once, unmodified. The cart is not cleared
// here; that is the caller's decision.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, details domain.ShippingDetails) error {
	if c == nil || c.IsEmpty() {
		return ErrEmptyCart
	}

	if err := s.proc.ProcessOrder(ctx, c, details); err != nil {
		s.log.Error("order dispatch failed", slog.Any("err", err))
		return err
	}

	s.log.Info("order dispatched",
		slog.Int("lines", len(c.Lines())),
		slog.String("total", c.Total().String()),
	)
	return nil
}
