package service

import (
	"context"
	"errors"
	"log"
	"time"

	"tableside/order-svc/internal/domain"
)

var (
	ErrMissingSession = errors.New("session token is required")
	ErrSessionInvalid = errors.New("table session is expired or unknown")
)

// OrderService turns a party's cart into a committed order. Generation is
// privileged: the caller must present a live session token for the party's
// table, proving presence at that table.
type OrderService struct {
	repo      OrderRepository
	notifier  CartNotifier
	publisher OrderPublisher
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, notifier CartNotifier, publisher OrderPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *OrderService) Generate(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error) {
	if sessionToken == "" {
		return nil, ErrMissingSession
	}

	valid, err := s.repo.ValidateSessionForParty(partyID, sessionToken, s.now())
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrSessionInvalid
	}

	order, err := s.repo.GenerateOrder(partyID)
	if err != nil {
		return nil, err
	}

	// The cart emptied and the order list grew; tell every subscriber.
	if err := s.notifier.PublishCartChanged(ctx, partyID); err != nil {
		log.Printf("cart notification failed for party %d: %v", partyID, err)
	}
	if err := s.notifier.PublishOrdersChanged(ctx, partyID); err != nil {
		log.Printf("orders notification failed for party %d: %v", partyID, err)
	}

	if s.publisher != nil {
		event := s.buildEvent(order)
		if err := s.publisher.PublishOrderGenerated(ctx, event); err != nil {
			log.Printf("order event publish failed for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

func (s *OrderService) ListPartyOrders(partyID int) ([]domain.Order, error) {
	return s.repo.ListPartyOrders(partyID)
}

func (s *OrderService) buildEvent(order *domain.Order) domain.OrderEvent {
	tableNumber, err := s.repo.TableNumberForParty(order.PartyID)
	if err != nil {
		log.Printf("table number lookup failed for party %d: %v", order.PartyID, err)
	}

	items := make([]domain.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return domain.OrderEvent{
		Type:        domain.EventOrderGenerated,
		OrderID:     order.ID,
		PartyID:     order.PartyID,
		TableNumber: tableNumber,
		Total:       order.Total,
		Items:       items,
		Timestamp:   s.now(),
	}
}
