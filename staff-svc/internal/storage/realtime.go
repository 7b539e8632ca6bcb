package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// KitchenChannel matches the order service's item feed; both services
// publish to it and kitchen screens subscribe to it.
const KitchenChannel = "order_items"

// RealtimeHub is the staff side of the pub/sub fabric. Payloads are
// informational only; subscribers re-query on every notification.
type RealtimeHub struct {
	Client *redis.Client
}

func NewRealtimeHub(client *redis.Client) *RealtimeHub {
	return &RealtimeHub{Client: client}
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

// PublishOrdersChanged tells the party's devices and the kitchen that
// order state moved.
func (h *RealtimeHub) PublishOrdersChanged(ctx context.Context, partyID int) error {
	if err := h.publish(ctx, h.OrdersChannel(partyID), "orders", partyID); err != nil {
		return err
	}
	return h.publish(ctx, KitchenChannel, "order_items", partyID)
}

// Subscribe returns a coalescing notification channel plus a cancel func.
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
