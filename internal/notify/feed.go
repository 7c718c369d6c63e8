package notify

import (
	"context"

	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/server/ws"
)

// FeedNotifier pushes paid orders onto the admin dashboard feed.
type FeedNotifier struct {
	hub *ws.Hub
}

// NewFeedNotifier constructs FeedNotifier.
func NewFeedNotifier(hub *ws.Hub) *FeedNotifier {
	return &FeedNotifier{hub: hub}
}

// OrderPaid broadcasts the transition to connected dashboards.
func (n *FeedNotifier) OrderPaid(ctx context.Context, order *model.Order) error {
	n.hub.BroadcastOrderStatus(order)
	return nil
}
