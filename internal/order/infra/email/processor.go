package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/order/app"
	orderdomain "github.com/dwikikusuma/sportsstore/internal/order/domain"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

const subject = "New order submitted!"

type Settings struct {
	To       string
	From     string
	UseTLS   bool
	Username string
	Password string
	Host     string
	Port     int

	// WriteToDir switches delivery to a local pickup directory. TLS is
	// forced off and the body is encoded as plain ASCII.
	WriteToDir bool
	WriteDir   string
}

// OrderProcessor formats the cart into a plain-text message and either
// sends it over SMTP or drops it into a pickup directory.
type OrderProcessor struct {
	settings Settings
}

func NewOrderProcessor(settings Settings) *OrderProcessor {
	return &OrderProcessor{settings: settings}
}

func (p *OrderProcessor) ProcessOrder(ctx context.Context, c *domain.Cart, details orderdomain.ShippingDetails) error {
	body := buildBody(c, details)

	if p.settings.WriteToDir {
		return p.writeToPickupDir(body)
	}
	return p.send(ctx, body)
}

func (p *OrderProcessor) send(ctx context.Context, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(p.settings.From); err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}
	if err := msg.To(p.settings.To); err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(p.settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.settings.Username),
		mail.WithPassword(p.settings.Password),
	}
	if p.settings.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(p.settings.Host, opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}
	return nil
}

func (p *OrderProcessor) writeToPickupDir(body string) error {
	if err := os.MkdirAll(p.settings.WriteDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\n", p.settings.From)
	fmt.Fprintf(&sb, "To: %s\n", p.settings.To)
	fmt.Fprintf(&sb, "Subject: %s\n\n", subject)
	sb.WriteString(toASCII(body))

	name := filepath.Join(p.settings.WriteDir, fmt.Sprintf("order_%s.txt", uuid.NewString()))
	if err := os.WriteFile(name, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %v", app.ErrDelivery, err)
	}
	return nil
}

func buildBody(c *domain.Cart, details orderdomain.ShippingDetails) string {
	var sb strings.Builder

	sb.WriteString("A new order has been submitted\n")
	sb.WriteString("---\n")
	sb.WriteString("Items:\n")
	for _, line := range c.Lines() {
		fmt.Fprintf(&sb, "%d x %s (subtotal: %s)\n",
			line.Quantity, line.Product.Price, line.Subtotal())
	}
	fmt.Fprintf(&sb, "Total order value: %s\n", c.Total())
	sb.WriteString("---\n")
	sb.WriteString("Ship to:\n")
	for _, field := range []string{
		details.Name,
		details.Line1, details.Line2, details.Line3,
		details.City, details.State, details.Country, details.Zip,
	} {
		sb.WriteString(field)
		sb.WriteString("\n")
	}
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "Gift wrap: %s\n", yesNo(details.GiftWrap))

	return sb.String()
}

// toASCII replaces every non-ASCII character with a placeholder, the way
// pickup files are encoded.
func toASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return '?'
		}
		return r
	}, s)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
