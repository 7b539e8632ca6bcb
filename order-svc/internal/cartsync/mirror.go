// Package cartsync keeps a device-local mirror of the shared party cart in
// step with the server. Any device in the party may mutate the cart; every
// device converges on the same contents because the server copy is the only
// authority and repair is always a full reload, never a partial undo.
package cartsync

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"tableside/order-svc/internal/domain"
)

// Strategy picks how a local mutation is reflected before the server
// confirms it.
type Strategy int

const (
	// StrategyReload applies nothing locally; the mirror waits for the
	// post-mutation reload. Simple and always consistent, at the cost of a
	// visible round-trip.
	StrategyReload Strategy = iota
	// StrategyOptimistic applies the expected result locally first, then
	// issues the mutation. If the mutation fails, the mirror reloads from
	// the server rather than attempting to reverse the local change.
	StrategyOptimistic
)

var (
	ErrSubmitInFlight = errors.New("order submission already in flight")
)

// Backend is the server-side cart the mirror tracks.
type Backend interface {
	LoadCart(ctx context.Context, partyID int) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, partyID, productID int) error
	DecreaseCartItem(ctx context.Context, partyID, productID int) error
}

// OrderGenerator submits the party's cart as an order. The server snapshots
// and clears the cart atomically; the mirror only reflects that afterwards.
type OrderGenerator interface {
	GenerateOrder(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error)
}

// Notifier yields a signal whenever the party's cart changed anywhere.
// Signals carry no payload; the mirror re-queries on each one.
type Notifier interface {
	Subscribe(ctx context.Context, channel string) (<-chan struct{}, func())
}

// Mirror is one device's view of the shared cart. All methods are safe for
// concurrent use.
type Mirror struct {
	backend  Backend
	partyID  int
	strategy Strategy

	mu         sync.Mutex
	items      []domain.CartItem
	submitting bool

	watchCancel func()
	watchDone   chan struct{}
}

func NewMirror(backend Backend, partyID int, strategy Strategy) *Mirror {
	return &Mirror{
		backend:  backend,
		partyID:  partyID,
		strategy: strategy,
		items:    []domain.CartItem{},
	}
}

func (m *Mirror) PartyID() int { return m.partyID }

// Items returns a copy of the current mirrored cart.
func (m *Mirror) Items() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

// Total is the display sum over the mirrored lines. The authoritative total
// is computed server-side at submission.
func (m *Mirror) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, item := range m.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Load replaces the mirror wholesale with the server's cart.
func (m *Mirror) Load(ctx context.Context) error {
	items, err := m.backend.LoadCart(ctx, m.partyID)
	if err != nil {
		return err
	}
	m.replace(items)
	return nil
}

// Add puts one unit of the product in the cart. Under the optimistic
// strategy the line is bumped locally first; a failed mutation triggers a
// full reload so the mirror never drifts from the server.
func (m *Mirror) Add(ctx context.Context, product domain.Product) error {
	if m.strategy == StrategyOptimistic {
		m.applyAdd(product)
	}
	if err := m.backend.AddCartItem(ctx, m.partyID, product.ID); err != nil {
		m.repair(ctx)
		return err
	}
	if m.strategy == StrategyReload {
		return m.Load(ctx)
	}
	return nil
}

// Decrease removes one unit of the product; the line disappears when its
// quantity would reach zero. Decreasing an absent product is a no-op.
func (m *Mirror) Decrease(ctx context.Context, productID int) error {
	if !m.has(productID) {
		return nil
	}
	if m.strategy == StrategyOptimistic {
		m.applyDecrease(productID)
	}
	if err := m.backend.DecreaseCartItem(ctx, m.partyID, productID); err != nil {
		m.repair(ctx)
		return err
	}
	if m.strategy == StrategyReload {
		return m.Load(ctx)
	}
	return nil
}

// Submit converts the cart into an order. A second call while one is in
// flight fails fast with ErrSubmitInFlight, and submitting an empty cart is
// a no-op returning no order. On success the mirror empties, matching the
// server-side cart clear.
func (m *Mirror) Submit(ctx context.Context, gen OrderGenerator, sessionToken string) (*domain.Order, error) {
	m.mu.Lock()
	if m.submitting {
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(m.items) == 0 {
		m.mu.Unlock()
		return nil, nil
	}
	m.submitting = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	order, err := gen.GenerateOrder(ctx, m.partyID, sessionToken)
	if err != nil {
		m.repair(ctx)
		return nil, err
	}

	m.replace([]domain.CartItem{})
	return order, nil
}

// Watch reloads the mirror on every change notification until ctx ends or
// Close is called. Reload errors are logged and the watch keeps going; the
// next notification retries.
func (m *Mirror) Watch(ctx context.Context, notifier Notifier, channel string) {
	ctx, cancel := context.WithCancel(ctx)
	signals, stop := notifier.Subscribe(ctx, channel)
	done := make(chan struct{})

	m.mu.Lock()
	m.watchCancel = func() {
		cancel()
		stop()
	}
	m.watchDone = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				if err := m.Load(ctx); err != nil && ctx.Err() == nil {
					log.Printf("cart reload failed for party %d: %v", m.partyID, err)
				}
			}
		}
	}()
}

// Close stops the watch goroutine, if any, and waits for it to exit.
func (m *Mirror) Close() {
	m.mu.Lock()
	cancel := m.watchCancel
	done := m.watchDone
	m.watchCancel = nil
	m.watchDone = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (m *Mirror) replace(items []domain.CartItem) {
	sorted := make([]domain.CartItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	m.mu.Lock()
	m.items = sorted
	m.mu.Unlock()
}

func (m *Mirror) has(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (m *Mirror) applyAdd(product domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ProductID == product.ID {
			m.items[i].Quantity++
			return
		}
	}
	m.items = append(m.items, domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		ImageURL:  product.ImageURL,
	})
	sort.Slice(m.items, func(i, j int) bool { return m.items[i].ProductID < m.items[j].ProductID })
}

func (m *Mirror) applyDecrease(productID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ProductID != productID {
			continue
		}
		if m.items[i].Quantity <= 1 {
			m.items = append(m.items[:i], m.items[i+1:]...)
		} else {
			m.items[i].Quantity--
		}
		return
	}
}

// repair reconciles after a failed mutation. There is no partial undo: the
// server is re-read and the mirror replaced. A failed repair leaves the old
// mirror in place until the next notification or explicit Load.
func (m *Mirror) repair(ctx context.Context) {
	if err := m.Load(ctx); err != nil {
		log.Printf("cart repair failed for party %d: %v", m.partyID, err)
	}
}
