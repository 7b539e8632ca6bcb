package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"tableside/staff-svc/internal/domain"
)

var ErrItemFinished = errors.New("item is already ready")

// ErrItemMoved means the item changed status under the caller, usually a
// second cook tapping the same card. The caller re-reads the board.
var ErrItemMoved = errors.New("item status changed concurrently")

// KitchenService runs the kitchen pipeline. Items only ever move forward,
// and the order's own status is a projection derived from its items.
type KitchenService struct {
	repo     KitchenRepository
	notifier StaffNotifier
	now      func() time.Time
}

func NewKitchenService(repo KitchenRepository, notifier StaffNotifier) *KitchenService {
	return &KitchenService{repo: repo, notifier: notifier, now: time.Now}
}

// NextItemStatus is the single legal step for an item. There is no path
// backwards and no skipping a stage.
func NextItemStatus(current string) (string, error) {
	switch current {
	case domain.ItemStatusToPrepare:
		return domain.ItemStatusCooking, nil
	case domain.ItemStatusCooking:
		return domain.ItemStatusReady, nil
	case domain.ItemStatusReady:
		return "", ErrItemFinished
	default:
		return "", errors.New("unknown item status: " + current)
	}
}

// DeriveOrderStatus projects an order status from its item statuses: any
// cooking item means in progress, all ready means ready, otherwise the
// order is still as generated.
func DeriveOrderStatus(itemStatuses []string) string {
	if len(itemStatuses) == 0 {
		return domain.OrderStatusGenerated
	}
	allReady := true
	for _, status := range itemStatuses {
		if status == domain.ItemStatusCooking {
			return domain.OrderStatusInProgress
		}
		if status != domain.ItemStatusReady {
			allReady = false
		}
	}
	if allReady {
		return domain.OrderStatusReady
	}
	return domain.OrderStatusGenerated
}

// Board builds the three-column kitchen view, grouped per order and
// ordered oldest first within each column.
func (s *KitchenService) Board() (*domain.KitchenBoard, error) {
	items, err := s.repo.ListKitchenItems()
	if err != nil {
		return nil, err
	}

	board := &domain.KitchenBoard{
		ToPrepare: []domain.KitchenGroup{},
		Cooking:   []domain.KitchenGroup{},
		Ready:     []domain.KitchenGroup{},
	}

	byColumn := map[string]map[int]*domain.KitchenGroup{
		domain.ItemStatusToPrepare: {},
		domain.ItemStatusCooking:   {},
		domain.ItemStatusReady:     {},
	}
	for _, item := range items {
		groups, ok := byColumn[item.Status]
		if !ok {
			continue
		}
		group := groups[item.OrderID]
		if group == nil {
			group = &domain.KitchenGroup{
				OrderID:     item.OrderID,
				TableNumber: item.TableNumber,
				CreatedAt:   item.CreatedAt,
				Urgency:     domain.UrgencyFor(s.now().Sub(item.CreatedAt)),
			}
			groups[item.OrderID] = group
		}
		group.Items = append(group.Items, item)
	}

	board.ToPrepare = flattenGroups(byColumn[domain.ItemStatusToPrepare])
	board.Cooking = flattenGroups(byColumn[domain.ItemStatusCooking])
	board.Ready = flattenGroups(byColumn[domain.ItemStatusReady])
	return board, nil
}

func flattenGroups(groups map[int]*domain.KitchenGroup) []domain.KitchenGroup {
	out := make([]domain.KitchenGroup, 0, len(groups))
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].OrderID < out[j].OrderID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Advance moves an item one step forward, then re-derives and writes the
// order's projected status.
func (s *KitchenService) Advance(ctx context.Context, itemID int) (*domain.KitchenItem, error) {
	item, err := s.repo.GetKitchenItem(itemID)
	if err != nil {
		return nil, err
	}

	next, err := NextItemStatus(item.Status)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.AdvanceItem(itemID, item.Status, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrItemMoved
	}
	item.Status = next

	s.projectOrderStatus(ctx, item.OrderID)
	return item, nil
}

// projectOrderStatus recomputes the order status and notifies the party.
// Failures here leave a stale projection, corrected on the next advance.
func (s *KitchenService) projectOrderStatus(ctx context.Context, orderID int) {
	statuses, err := s.repo.ListOrderItemStatuses(orderID)
	if err != nil {
		log.Printf("status projection failed for order %d: %v", orderID, err)
		return
	}
	if err := s.repo.SetOrderStatus(orderID, DeriveOrderStatus(statuses)); err != nil {
		log.Printf("status projection failed for order %d: %v", orderID, err)
		return
	}

	partyID, err := s.repo.PartyForOrder(orderID)
	if err != nil {
		log.Printf("party lookup failed for order %d: %v", orderID, err)
		return
	}
	if err := s.notifier.PublishOrdersChanged(ctx, partyID); err != nil {
		log.Printf("orders notification failed for party %d: %v", partyID, err)
	}
}
