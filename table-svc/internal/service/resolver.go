package service

import (
	"errors"
	"time"

	"tableside/table-svc/internal/domain"
)

// SessionTTL is how long a device stays bound to a table after scanning.
const SessionTTL = 2 * time.Hour

var ErrInvalidTable = errors.New("table could not be resolved")

// ResolverService turns a stored session token or a scanned QR token into a
// table identity. Resolution fails closed: anything that does not resolve
// cleanly is an invalid table, never a fallback to some default menu.
type ResolverService struct {
	repo TableRepository
	now  func() time.Time
}

func NewResolverService(repo TableRepository) *ResolverService {
	return &ResolverService{repo: repo, now: time.Now}
}

// Resolve prefers a still-valid session token; the QR token is only consumed
// when no usable session exists, and only then is a new session created.
// Repeated calls with the same valid session token never create anything,
// which is what makes a re-run of the device bootstrap harmless.
func (s *ResolverService) Resolve(sessionToken, qrToken string) (*domain.Resolution, error) {
	if sessionToken != "" {
		table, err := s.repo.GetSessionTable(sessionToken, s.now())
		if err == nil && table != nil {
			return &domain.Resolution{
				TableID:      table.ID,
				TableNumber:  table.TableNumber,
				SessionToken: sessionToken,
			}, nil
		}
		// expired or unknown session: fall through to the QR token
	}

	if qrToken == "" {
		return nil, ErrInvalidTable
	}

	table, err := s.repo.GetTableByQRToken(qrToken)
	if err != nil || table == nil {
		// lookup errors are treated exactly like not-found
		return nil, ErrInvalidTable
	}

	token, err := NewOpaqueToken()
	if err != nil {
		return nil, ErrInvalidTable
	}

	sess, err := s.repo.CreateSession(table.ID, token, s.now().Add(SessionTTL))
	if err != nil {
		return nil, ErrInvalidTable
	}

	return &domain.Resolution{
		TableID:      table.ID,
		TableNumber:  table.TableNumber,
		SessionToken: sess.SessionToken,
	}, nil
}
