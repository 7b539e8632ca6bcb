package service

import (
	"context"
	"log"

	"tableside/order-svc/internal/domain"
)

// CartService mutates the shared party cart and notifies every device in
// the party afterwards. Notification failures are logged, not returned:
// the mutation already committed, and subscribers reload on their next
// notification anyway.
type CartService struct {
	repo     CartRepository
	notifier CartNotifier
}

func NewCartService(repo CartRepository, notifier CartNotifier) *CartService {
	return &CartService{repo: repo, notifier: notifier}
}

func (s *CartService) Load(ctx context.Context, partyID int) ([]domain.CartItem, error) {
	return s.repo.LoadCart(partyID)
}

func (s *CartService) Add(ctx context.Context, partyID, productID int) error {
	if err := s.repo.AddCartItem(partyID, productID); err != nil {
		return err
	}
	s.notifyCart(ctx, partyID)
	return nil
}

func (s *CartService) Decrease(ctx context.Context, partyID, productID int) error {
	if err := s.repo.DecreaseCartItem(partyID, productID); err != nil {
		return err
	}
	s.notifyCart(ctx, partyID)
	return nil
}

func (s *CartService) notifyCart(ctx context.Context, partyID int) {
	if err := s.notifier.PublishCartChanged(ctx, partyID); err != nil {
		log.Printf("cart notification failed for party %d: %v", partyID, err)
	}
}
