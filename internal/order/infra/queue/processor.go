package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/order/app"
	"github.com/dwikikusuma/sportsstore/internal/order/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type orderMessage struct {
	Reference string         `json:"reference"`
	Lines     []orderLine    `json:"lines"`
	Total     string         `json:"total"`
	Shipping  shippingRecord `json:"shipping"`
}

type orderLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type shippingRecord struct {
	Name     string `json:"name"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	GiftWrap bool   `json:"gift_wrap"`
}

// OrderProcessor publishes finalized orders to a RabbitMQ queue instead
// of mailing them. It satisfies the same Processor port as the email
// variant.
type OrderProcessor struct {
	ch        *amqp.Channel
	queueName string
}

func NewOrderProcessor(conn *amqp.Connection, queueName string) (*OrderProcessor, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &OrderProcessor{ch: ch, queueName: queueName}, nil
}

func (p *OrderProcessor) ProcessOrder(ctx context.Context, c *cart.Cart, details domain.ShippingDetails) error {
	msg := orderMessage{
		Reference: uuid.NewString(),
		Total:     c.Total().String(),
		Shipping: shippingRecord{
			Name:     details.Name,
			Line1:    details.Line1,
			Line2:    details.Line2,
			Line3:    details.Line3,
			City:     details.City,
			State:    details.State,
			Country:  details.Country,
			Zip:      details.Zip,
			GiftWrap: details.GiftWrap,
		},
	}
	for _, l := range c.Lines() {
		msg.Lines = append(msg.Lines, orderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price.String(),
			Subtotal:  l.Subtotal().String(),
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}

	return nil
}

func (p *OrderProcessor) Close() error {
	return p.ch.Close()
}
