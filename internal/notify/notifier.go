package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lafrite/friterie/internal/domain/model"
)

// Notifier announces paid orders to interested channels. Delivery is
// best-effort: the payment transition is the durable fact of record and a
// failed notification must never fail the webhook.
type Notifier interface {
	OrderPaid(ctx context.Context, order *model.Order) error
}

// FanOut dispatches to every configured notifier, logging failures instead
// of propagating them.
type FanOut struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// NewFanOut constructs a best-effort multi-notifier.
func NewFanOut(logger *slog.Logger, notifiers ...Notifier) *FanOut {
	return &FanOut{notifiers: notifiers, logger: logger}
}

// OrderPaid notifies all channels. Always returns nil.
func (f *FanOut) OrderPaid(ctx context.Context, order *model.Order) error {
	for _, n := range f.notifiers {
		if err := n.OrderPaid(ctx, order); err != nil {
			f.logger.Error("order notification failed",
				slog.String("order", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// Summary renders a one-line order description for notification channels.
func Summary(order *model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s paid: %s %.2f", shortID(order.ID), currencySymbol, float64(order.Total)/100)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "\n%d x %s", item.Quantity, item.Name)
	}
	if order.DeliveryMode == model.DeliveryModeDelivery {
		fmt.Fprintf(&b, "\nDeliver to: %s, %s %s", order.Customer.Address, order.Customer.PostalCode, order.Customer.City)
	} else {
		b.WriteString("\nPickup at the counter")
	}
	return b.String()
}

const currencySymbol = "€"

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
