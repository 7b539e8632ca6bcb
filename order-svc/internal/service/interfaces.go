package service

import (
	"context"
	"time"

	"tableside/order-svc/internal/domain"
)

type MenuRepository interface {
	ListCategories() ([]domain.Category, error)
	ListProducts(categoryID int) ([]domain.Product, error)
}

type CartRepository interface {
	LoadCart(partyID int) ([]domain.CartItem, error)
	AddCartItem(partyID, productID int) error
	DecreaseCartItem(partyID, productID int) error
}

type OrderRepository interface {
	GenerateOrder(partyID int) (*domain.Order, error)
	ValidateSessionForParty(partyID int, sessionToken string, now time.Time) (bool, error)
	TableNumberForParty(partyID int) (int, error)
	ListPartyOrders(partyID int) ([]domain.Order, error)
}

// CartNotifier fans change notifications out to every device in a party.
type CartNotifier interface {
	PublishCartChanged(ctx context.Context, partyID int) error
	PublishOrdersChanged(ctx context.Context, partyID int) error
}

type OrderPublisher interface {
	PublishOrderGenerated(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	Categories() ([]domain.Category, error)
	Products(categoryID int) ([]domain.Product, error)
}

type CartServiceInterface interface {
	Load(ctx context.Context, partyID int) ([]domain.CartItem, error)
	Add(ctx context.Context, partyID, productID int) error
	Decrease(ctx context.Context, partyID, productID int) error
}

type OrderServiceInterface interface {
	Generate(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error)
	ListPartyOrders(partyID int) ([]domain.Order, error)
}

var _ MenuServiceInterface = (*MenuService)(nil)
var _ CartServiceInterface = (*CartService)(nil)
var _ OrderServiceInterface = (*OrderService)(nil)
