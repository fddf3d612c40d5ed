package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

// cartStorageKey is the single record the item list is persisted under.
// Totals are never stored; they are recomputed on load.
const cartStorageKey = "cart-storage"

const persistTimeout = 5 * time.Second

type subscriber struct {
	id     int
	notify func(domain.Cart)
}

// Store owns the live cart snapshot. Mutations rebuild the snapshot
// under the lock, wake the persistence worker and then notify
// subscribers with the new cart. Reads never touch storage and never
// block on it; the in-memory state is authoritative the instant it
// changes.
type Store struct {
	mu          sync.Mutex
	cart        domain.Cart
	mutated     bool
	subscribers []subscriber
	nextSubID   int

	storage storage.Storage
	dirty   chan struct{}
	done    chan struct{}
	stopped chan struct{}
	closing sync.Once
}

// New creates a store backed by the given storage and starts its
// persistence worker. Call Close to flush and stop it.
func New(st storage.Storage) *Store {
	s := &Store{
		cart:    domain.EmptyCart(),
		storage: st,
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// Cart returns the current snapshot without blocking on I/O.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// SetItems replaces the snapshot with a cart rebuilt from items,
// schedules a durable write and synchronously notifies subscribers
// with the new cart.
func (s *Store) SetItems(items []domain.CartItem) {
	s.Update(func([]domain.CartItem) []domain.CartItem {
		return items
	})
}

// Update applies transform to the current item list and installs the
// result as the new snapshot. The read-modify-write runs under the
// store lock, so concurrent callers are serialized and each transform
// sees the latest items. Subscribers run outside the lock: each call
// delivers its own resulting cart, but when two mutations race the
// delivery order across them is unspecified.
func (s *Store) Update(transform func([]domain.CartItem) []domain.CartItem) domain.Cart {
	s.mu.Lock()
	s.cart = domain.NewCart(transform(s.cart.Items()))
	s.mutated = true
	cart := s.cart
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	s.markDirty()
	for _, sub := range subs {
		sub.notify(cart)
	}
	return cart
}

// Subscribe registers a listener invoked after every mutation. The
// returned function deregisters it; calling it more than once is a
// no-op.
func (s *Store) Subscribe(fn func(domain.Cart)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, notify: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Hydrate loads the persisted item list, best effort. Missing or
// malformed data leaves the empty cart. A mutation that lands before
// hydration completes wins: once any mutation has been applied, even
// one that emptied the cart, the loaded items are discarded.
func (s *Store) Hydrate(ctx context.Context) {
	raw, err := s.storage.Get(ctx, cartStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("cart hydration failed: %v", err)
		}
		return
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("discarding malformed persisted cart: %v", err)
		return
	}

	s.mu.Lock()
	if s.mutated {
		s.mu.Unlock()
		return
	}
	s.cart = domain.NewCart(items)
	cart := s.cart
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.notify(cart)
	}
}

// Close stops the persistence worker after a final flush attempt.
func (s *Store) Close() {
	s.closing.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

// snapshotSubscribers must be called with the lock held. Notification
// iterates the snapshot, not the live set, so a listener may
// subscribe or unsubscribe during its own callback.
func (s *Store) snapshotSubscribers() []subscriber {
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// run drains the dirty signal and writes the latest snapshot. The
// signal coalesces, and persist always reads the current items at wake
// time, so a slow write can never clobber a newer one.
func (s *Store) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.dirty:
			s.persist()
		case <-s.done:
			select {
			case <-s.dirty:
				s.persist()
			default:
			}
			return
		}
	}
}

// persist writes the current item list. Failures are logged and
// swallowed: a broken write must never surface to cart callers.
func (s *Store) persist() {
	items := s.Cart().Items()

	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("failed to marshal cart items: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.storage.Set(ctx, cartStorageKey, string(data)); err != nil {
		log.Printf("cart persist failed: %v", err)
	}
}
