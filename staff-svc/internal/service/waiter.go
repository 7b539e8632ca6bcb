package service

import (
	"context"
	"errors"
	"log"

	"tableside/staff-svc/internal/domain"
)

var (
	ErrAlreadyClaimed = errors.New("party is already claimed or closed")
	ErrNotAssigned    = errors.New("party is not assigned to this waiter")
)

// WaiterService covers the waiter's workflow: pick up unassigned parties,
// watch their orders and close them out at the end of the visit.
type WaiterService struct {
	repo     PartyRepository
	notifier StaffNotifier
}

func NewWaiterService(repo PartyRepository, notifier StaffNotifier) *WaiterService {
	return &WaiterService{repo: repo, notifier: notifier}
}

func (s *WaiterService) UnassignedParties() ([]domain.ClaimableParty, error) {
	return s.repo.ListUnassignedParties()
}

// Claim takes the party for the waiter. Losing the race, or claiming a
// closed party, surfaces as ErrAlreadyClaimed.
func (s *WaiterService) Claim(ctx context.Context, partyID, waiterID int) error {
	claimed, err := s.repo.ClaimParty(partyID, waiterID)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrAlreadyClaimed
	}
	s.notifyOrders(ctx, partyID)
	return nil
}

func (s *WaiterService) MyParties(waiterID int) ([]domain.ClaimableParty, error) {
	return s.repo.ListWaiterParties(waiterID)
}

func (s *WaiterService) PartyOrders(partyID int) ([]domain.Order, error) {
	return s.repo.PartyOrders(partyID)
}

// Finalize closes out the party. Only its assigned waiter may do it.
func (s *WaiterService) Finalize(ctx context.Context, partyID, waiterID int) error {
	closed, err := s.repo.FinalizeParty(partyID, waiterID)
	if err != nil {
		return err
	}
	if !closed {
		return ErrNotAssigned
	}
	s.notifyOrders(ctx, partyID)
	return nil
}

func (s *WaiterService) notifyOrders(ctx context.Context, partyID int) {
	if err := s.notifier.PublishOrdersChanged(ctx, partyID); err != nil {
		log.Printf("orders notification failed for party %d: %v", partyID, err)
	}
}
