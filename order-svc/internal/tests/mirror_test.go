package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableside/order-svc/internal/cartsync"
	"tableside/order-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartBackend is an in-memory stand-in for the order service, shared by
// every mirror in a test the way the real server is shared by every device.
type fakeCartBackend struct {
	mu       sync.Mutex
	carts    map[int]map[int]int
	products map[int]domain.Product

	failAdd      bool
	failDecrease bool
}

func newFakeCartBackend(products ...domain.Product) *fakeCartBackend {
	b := &fakeCartBackend{
		carts:    make(map[int]map[int]int),
		products: make(map[int]domain.Product),
	}
	for _, p := range products {
		b.products[p.ID] = p
	}
	return b
}

func (b *fakeCartBackend) LoadCart(ctx context.Context, partyID int) ([]domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := []domain.CartItem{}
	for productID, qty := range b.carts[partyID] {
		p := b.products[productID]
		items = append(items, domain.CartItem{
			ProductID: productID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
		})
	}
	return items, nil
}

func (b *fakeCartBackend) AddCartItem(ctx context.Context, partyID, productID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failAdd {
		return errors.New("add rejected")
	}
	if b.carts[partyID] == nil {
		b.carts[partyID] = make(map[int]int)
	}
	b.carts[partyID][productID]++
	return nil
}

func (b *fakeCartBackend) DecreaseCartItem(ctx context.Context, partyID, productID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failDecrease {
		return errors.New("decrease rejected")
	}
	cart := b.carts[partyID]
	if cart[productID] <= 1 {
		delete(cart, productID)
	} else {
		cart[productID]--
	}
	return nil
}

// GenerateOrder snapshots and clears the cart atomically, like the real
// transaction does.
func (b *fakeCartBackend) GenerateOrder(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sessionToken == "" {
		return nil, errors.New("session token is required")
	}
	cart := b.carts[partyID]
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{ID: 500, PartyID: partyID, Status: domain.OrderStatusGenerated}
	for productID, qty := range cart {
		p := b.products[productID]
		order.Total += p.Price * float64(qty)
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: productID,
			Name:      p.Name,
			Quantity:  qty,
			Price:     p.Price,
			Status:    domain.ItemStatusToPrepare,
		})
	}
	delete(b.carts, partyID)
	return order, nil
}

// blockingGenerator parks inside GenerateOrder until released.
type blockingGenerator struct {
	entered  chan struct{}
	release  chan struct{}
	delegate cartsync.OrderGenerator
}

func (g *blockingGenerator) GenerateOrder(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error) {
	close(g.entered)
	<-g.release
	return g.delegate.GenerateOrder(ctx, partyID, sessionToken)
}

// channelNotifier hands tests direct control over change notifications.
type channelNotifier struct {
	signals chan struct{}
}

func (n *channelNotifier) Subscribe(ctx context.Context, channel string) (<-chan struct{}, func()) {
	return n.signals, func() {}
}

var (
	margherita = domain.Product{ID: 11, Name: "Margherita", Price: 8.5}
	lemonade   = domain.Product{ID: 12, Name: "Lemonade", Price: 3.0}
)

func TestMirror_OptimisticAddAccumulatesQuantity(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	require.NoError(t, mirror.Add(context.Background(), margherita))
	require.NoError(t, mirror.Add(context.Background(), margherita))

	items := mirror.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Margherita", items[0].Name)
	assert.InDelta(t, 17.0, mirror.Total(), 0.001)
}

func TestMirror_ReloadStrategyReflectsServerAfterAdd(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyReload)

	require.NoError(t, mirror.Add(context.Background(), margherita))

	items := mirror.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestMirror_TwoMirrorsConvergeOnSharedCart(t *testing.T) {
	backend := newFakeCartBackend(margherita, lemonade)
	alice := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)
	bob := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	require.NoError(t, alice.Add(context.Background(), margherita))
	require.NoError(t, bob.Add(context.Background(), lemonade))
	require.NoError(t, bob.Add(context.Background(), margherita))

	// in production the reload is notification-driven; the convergence
	// guarantee is the same either way
	require.NoError(t, alice.Load(context.Background()))
	require.NoError(t, bob.Load(context.Background()))

	assert.Equal(t, alice.Items(), bob.Items())
	require.Len(t, alice.Items(), 2)
	assert.Equal(t, 2, alice.Items()[0].Quantity)
}

func TestMirror_DecreaseRemovesLineAtQuantityOne(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	require.NoError(t, mirror.Add(context.Background(), margherita))
	require.NoError(t, mirror.Decrease(context.Background(), margherita.ID))

	assert.Empty(t, mirror.Items())
	server, _ := backend.LoadCart(context.Background(), 42)
	assert.Empty(t, server)
}

func TestMirror_DecreaseAbsentProductIsNoop(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	backend.failDecrease = true // would error if the mirror called through
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	assert.NoError(t, mirror.Decrease(context.Background(), 999))
}

func TestMirror_FailedMutationRepairsByReload(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	require.NoError(t, mirror.Add(context.Background(), margherita))

	backend.failAdd = true
	err := mirror.Add(context.Background(), margherita)

	require.Error(t, err)
	// the optimistic bump to 2 must be gone: repair is a full reload, so the
	// mirror shows the server's quantity of 1
	items := mirror.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestMirror_SubmitClearsMirrorAndServerCart(t *testing.T) {
	backend := newFakeCartBackend(margherita, lemonade)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	require.NoError(t, mirror.Add(context.Background(), margherita))
	require.NoError(t, mirror.Add(context.Background(), lemonade))

	order, err := mirror.Submit(context.Background(), backend, "sess_9f")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusGenerated, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Empty(t, mirror.Items())
	server, _ := backend.LoadCart(context.Background(), 42)
	assert.Empty(t, server)
}

func TestMirror_SubmitEmptyCartIsNoop(t *testing.T) {
	backend := newFakeCartBackend()
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)

	order, err := mirror.Submit(context.Background(), backend, "sess_9f")

	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestMirror_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)
	require.NoError(t, mirror.Add(context.Background(), margherita))

	gen := &blockingGenerator{
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
		delegate: backend,
	}

	done := make(chan error, 1)
	go func() {
		_, err := mirror.Submit(context.Background(), gen, "sess_9f")
		done <- err
	}()

	<-gen.entered
	_, err := mirror.Submit(context.Background(), backend, "sess_9f")
	assert.ErrorIs(t, err, cartsync.ErrSubmitInFlight)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Empty(t, mirror.Items())
}

func TestMirror_FailedSubmitKeepsCart(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyOptimistic)
	require.NoError(t, mirror.Add(context.Background(), margherita))

	order, err := mirror.Submit(context.Background(), backend, "")

	require.Error(t, err)
	assert.Nil(t, order)
	require.Len(t, mirror.Items(), 1)
}

func TestMirror_WatchReloadsOnNotification(t *testing.T) {
	backend := newFakeCartBackend(margherita)
	mirror := cartsync.NewMirror(backend, 42, cartsync.StrategyReload)
	notifier := &channelNotifier{signals: make(chan struct{}, 1)}

	mirror.Watch(context.Background(), notifier, "party_cart:42")
	defer mirror.Close()

	// another device mutates the shared cart, then the notification lands
	require.NoError(t, backend.AddCartItem(context.Background(), 42, margherita.ID))
	notifier.signals <- struct{}{}

	require.Eventually(t, func() bool {
		items := mirror.Items()
		return len(items) == 1 && items[0].Quantity == 1
	}, time.Second, 5*time.Millisecond)
}
