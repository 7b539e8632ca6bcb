package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingSession means the caller skipped table resolution entirely.
	ErrMissingSession = errors.New("session token is required for party resolution")
	ErrSessionExpired = errors.New("table session is expired or unknown")
)

// PartyService implements the get-or-create party operation. Same
// (table, session) pair always yields the same party id, and different
// sessions at the same table share the party while it stays active.
type PartyService struct {
	repo TableRepository
	now  func() time.Time
}

func NewPartyService(repo TableRepository) *PartyService {
	return &PartyService{repo: repo, now: time.Now}
}

func (s *PartyService) GetOrCreateParty(tableID int, sessionToken string) (int, error) {
	if sessionToken == "" {
		return 0, ErrMissingSession
	}

	ok, err := s.repo.ValidateSession(sessionToken, tableID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to validate session: %w", err)
	}
	if !ok {
		return 0, ErrSessionExpired
	}

	return s.repo.GetOrCreateActiveParty(tableID)
}
