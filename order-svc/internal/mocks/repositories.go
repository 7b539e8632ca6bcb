package mocks

import (
	"context"
	"testing"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderRepository is a testify mock of service.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t *testing.T) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) GenerateOrder(partyID int) (*domain.Order, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) ValidateSessionForParty(partyID int, sessionToken string, now time.Time) (bool, error) {
	args := m.Called(partyID, sessionToken, now)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) TableNumberForParty(partyID int) (int, error) {
	args := m.Called(partyID)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepository) ListPartyOrders(partyID int) ([]domain.Order, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// CartRepository is a testify mock of service.CartRepository.
type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t *testing.T) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartRepository) LoadCart(partyID int) ([]domain.CartItem, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *CartRepository) AddCartItem(partyID, productID int) error {
	args := m.Called(partyID, productID)
	return args.Error(0)
}

func (m *CartRepository) DecreaseCartItem(partyID, productID int) error {
	args := m.Called(partyID, productID)
	return args.Error(0)
}

// CartNotifier is a testify mock of service.CartNotifier.
type CartNotifier struct {
	mock.Mock
}

func NewCartNotifier(t *testing.T) *CartNotifier {
	m := &CartNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartNotifier) PublishCartChanged(ctx context.Context, partyID int) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

func (m *CartNotifier) PublishOrdersChanged(ctx context.Context, partyID int) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

// OrderPublisher is a testify mock of service.OrderPublisher.
type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t *testing.T) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrderGenerated(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
