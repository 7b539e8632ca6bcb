package service

import (
	"time"

	"tableside/table-svc/internal/domain"
)

type TableRepository interface {
	CreateTable(t *domain.Table) error
	ListTables() ([]domain.TableOverview, error)
	GetTable(id int) (*domain.Table, error)
	GetTableByQRToken(token string) (*domain.Table, error)
	CreateSession(tableID int, token string, expiresAt time.Time) (*domain.TableSession, error)
	GetSessionTable(token string, now time.Time) (*domain.Table, error)
	ValidateSession(token string, tableID int, now time.Time) (bool, error)
	GetOrCreateActiveParty(tableID int) (int, error)
	EndExpiredSessions(now time.Time) (int64, error)
}

type ResolverServiceInterface interface {
	Resolve(sessionToken, qrToken string) (*domain.Resolution, error)
}

type PartyServiceInterface interface {
	GetOrCreateParty(tableID int, sessionToken string) (int, error)
}

type TableServiceInterface interface {
	Create(tableNumber, seats int, isActive bool) (*domain.Table, error)
	List() ([]domain.TableOverview, error)
	QRCodePNG(tableID int) ([]byte, error)
}

var _ ResolverServiceInterface = (*ResolverService)(nil)
var _ PartyServiceInterface = (*PartyService)(nil)
var _ TableServiceInterface = (*TableService)(nil)
