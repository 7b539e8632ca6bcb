package mocks

import (
	"context"
	"testing"
	"time"

	"tableside/staff-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// UserRepository is a testify mock of service.UserRepository.
type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t *testing.T) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) CreateUser(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetUser(id int) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) CountUsers() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// PartyRepository is a testify mock of service.PartyRepository.
type PartyRepository struct {
	mock.Mock
}

func NewPartyRepository(t *testing.T) *PartyRepository {
	m := &PartyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PartyRepository) ListUnassignedParties() ([]domain.ClaimableParty, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimableParty), args.Error(1)
}

func (m *PartyRepository) ClaimParty(partyID, waiterID int) (bool, error) {
	args := m.Called(partyID, waiterID)
	return args.Bool(0), args.Error(1)
}

func (m *PartyRepository) ListWaiterParties(waiterID int) ([]domain.ClaimableParty, error) {
	args := m.Called(waiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimableParty), args.Error(1)
}

func (m *PartyRepository) PartyOrders(partyID int) ([]domain.Order, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *PartyRepository) FinalizeParty(partyID, waiterID int) (bool, error) {
	args := m.Called(partyID, waiterID)
	return args.Bool(0), args.Error(1)
}

// KitchenRepository is a testify mock of service.KitchenRepository.
type KitchenRepository struct {
	mock.Mock
}

func NewKitchenRepository(t *testing.T) *KitchenRepository {
	m := &KitchenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *KitchenRepository) ListKitchenItems() ([]domain.KitchenItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KitchenItem), args.Error(1)
}

func (m *KitchenRepository) GetKitchenItem(itemID int) (*domain.KitchenItem, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KitchenItem), args.Error(1)
}

func (m *KitchenRepository) AdvanceItem(itemID int, from, to string) (bool, error) {
	args := m.Called(itemID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *KitchenRepository) ListOrderItemStatuses(orderID int) ([]string, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *KitchenRepository) SetOrderStatus(orderID int, status string) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *KitchenRepository) PartyForOrder(orderID int) (int, error) {
	args := m.Called(orderID)
	return args.Int(0), args.Error(1)
}

// TokenStore is a testify mock of service.TokenStoreInterface.
type TokenStore struct {
	mock.Mock
}

func NewTokenStore(t *testing.T) *TokenStore {
	m := &TokenStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *TokenStore) Lookup(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *TokenStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// StaffNotifier is a testify mock of service.StaffNotifier.
type StaffNotifier struct {
	mock.Mock
}

func NewStaffNotifier(t *testing.T) *StaffNotifier {
	m := &StaffNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StaffNotifier) PublishOrdersChanged(ctx context.Context, partyID int) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}
