package mocks

import (
	"testing"
	"time"

	"tableside/table-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// TableRepository is a testify mock of service.TableRepository.
type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t *testing.T) *TableRepository {
	m := &TableRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TableRepository) CreateTable(table *domain.Table) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *TableRepository) ListTables() ([]domain.TableOverview, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableOverview), args.Error(1)
}

func (m *TableRepository) GetTable(id int) (*domain.Table, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *TableRepository) GetTableByQRToken(token string) (*domain.Table, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *TableRepository) CreateSession(tableID int, token string, expiresAt time.Time) (*domain.TableSession, error) {
	args := m.Called(tableID, token, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

func (m *TableRepository) GetSessionTable(token string, now time.Time) (*domain.Table, error) {
	args := m.Called(token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *TableRepository) ValidateSession(token string, tableID int, now time.Time) (bool, error) {
	args := m.Called(token, tableID, now)
	return args.Bool(0), args.Error(1)
}

func (m *TableRepository) GetOrCreateActiveParty(tableID int) (int, error) {
	args := m.Called(tableID)
	return args.Int(0), args.Error(1)
}

func (m *TableRepository) EndExpiredSessions(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}
