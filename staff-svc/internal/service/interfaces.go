package service

import (
	"context"
	"time"

	"tableside/staff-svc/internal/domain"
)

type UserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByUsername(username string) (*domain.User, error)
	GetUser(id int) (*domain.User, error)
	CountUsers() (int, error)
}

type PartyRepository interface {
	ListUnassignedParties() ([]domain.ClaimableParty, error)
	ClaimParty(partyID, waiterID int) (bool, error)
	ListWaiterParties(waiterID int) ([]domain.ClaimableParty, error)
	PartyOrders(partyID int) ([]domain.Order, error)
	FinalizeParty(partyID, waiterID int) (bool, error)
}

type KitchenRepository interface {
	ListKitchenItems() ([]domain.KitchenItem, error)
	GetKitchenItem(itemID int) (*domain.KitchenItem, error)
	AdvanceItem(itemID int, from, to string) (bool, error)
	ListOrderItemStatuses(orderID int) ([]string, error)
	SetOrderStatus(orderID int, status string) error
	PartyForOrder(orderID int) (int, error)
}

type TokenStoreInterface interface {
	Save(ctx context.Context, token string, userID int, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
}

type StaffNotifier interface {
	PublishOrdersChanged(ctx context.Context, partyID int) error
}

type AccountServiceInterface interface {
	Register(username, password, role, waiterCode string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	EnsureAdmin(username, password string) error
}

type WaiterServiceInterface interface {
	UnassignedParties() ([]domain.ClaimableParty, error)
	Claim(ctx context.Context, partyID, waiterID int) error
	MyParties(waiterID int) ([]domain.ClaimableParty, error)
	PartyOrders(partyID int) ([]domain.Order, error)
	Finalize(ctx context.Context, partyID, waiterID int) error
}

type KitchenServiceInterface interface {
	Board() (*domain.KitchenBoard, error)
	Advance(ctx context.Context, itemID int) (*domain.KitchenItem, error)
}

var _ AccountServiceInterface = (*AccountService)(nil)
var _ WaiterServiceInterface = (*WaiterService)(nil)
var _ KitchenServiceInterface = (*KitchenService)(nil)
