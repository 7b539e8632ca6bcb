package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// KitchenChannel carries change notifications for order items, unscoped:
// every kitchen screen watches the same feed.
const KitchenChannel = "order_items"

// RealtimeHub publishes and subscribes to change notifications over redis
// pub/sub. A notification means "something changed", nothing more; the
// payload is informational and subscribers must re-query instead of trusting
// it. That keeps every reconciliation a full, idempotent reload.
type RealtimeHub struct {
	Client *redis.Client
}

func NewRealtimeHub(client *redis.Client) *RealtimeHub {
	return &RealtimeHub{Client: client}
}

func (h *RealtimeHub) CartChannel(partyID int) string {
	return "party_cart:" + strconv.Itoa(partyID)
}

func (h *RealtimeHub) OrdersChannel(partyID int) string {
	return "orders:" + strconv.Itoa(partyID)
}

func (h *RealtimeHub) publish(ctx context.Context, channel, table string, partyID int) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"table":    table,
		"party_id": partyID,
	})
	return h.Client.Publish(ctx, channel, payload).Err()
}

func (h *RealtimeHub) PublishCartChanged(ctx context.Context, partyID int) error {
	return h.publish(ctx, h.CartChannel(partyID), "party_cart_items", partyID)
}

func (h *RealtimeHub) PublishOrdersChanged(ctx context.Context, partyID int) error {
	if err := h.publish(ctx, h.OrdersChannel(partyID), "orders", partyID); err != nil {
		return err
	}
	return h.publish(ctx, KitchenChannel, "order_items", partyID)
}

// Subscribe returns a coalescing notification channel plus a cancel func.
// Bursts collapse into a single pending notification, which is safe because
// every consumer reacts with a full reload anyway.
func (h *RealtimeHub) Subscribe(ctx context.Context, channel string) (<-chan struct{}, func()) {
	sub := h.Client.Subscribe(ctx, channel)
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for range sub.Channel() {
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
