package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/storage"
	"storefront/internal/store"
)

type mockStorage struct {
	m      sync.RWMutex
	values map[string]string
}

func (m *mockStorage) Get(_ context.Context, key string) (string, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return val, nil
}

func (m *mockStorage) Set(_ context.Context, key, value string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockStorage) Remove(_ context.Context, key string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.values, key)
	return nil
}

func newRepo(t *testing.T) *StoreRepository {
	t.Helper()
	st := store.New(&mockStorage{values: make(map[string]string)})
	t.Cleanup(st.Close)
	return New(st)
}

func TestAddToCart_NewProduct(t *testing.T) {
	sut := newRepo(t)

	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 10, ImageURL: "a.png"})

	cart := sut.Cart()
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 1, cart.TotalItems())
	assert.Equal(t, 10.0, cart.TotalPrice())
}

func TestAddToCart_SameProductTwiceIncrementsQuantity(t *testing.T) {
	sut := newRepo(t)

	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 10})
	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 10})

	cart := sut.Cart()
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 2, cart.TotalItems())
	assert.Equal(t, 20.0, cart.TotalPrice())
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	sut := newRepo(t)
	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 10})

	sut.UpdateQuantity(1, 5)

	cart := sut.Cart()
	assert.Equal(t, 5, cart.TotalItems())
	assert.Equal(t, 50.0, cart.TotalPrice())
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	sut := newRepo(t)
	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 10})

	sut.UpdateQuantity(1, 0)

	cart := sut.Cart()
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 0, cart.TotalItems())
	assert.Equal(t, 0.0, cart.TotalPrice())
}

func TestRemoveFromCart(t *testing.T) {
	sut := newRepo(t)
	sut.AddToCart(AddToCartParams{ProductID: 1, Title: "A", Price: 100})
	sut.AddToCart(AddToCartParams{ProductID: 2, Title: "B", Price: 50})

	sut.RemoveFromCart(1)

	cart := sut.Cart()
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, int64(2), cart.Items()[0].ProductID)
	assert.Equal(t, 50.0, cart.TotalPrice())
}

func TestClearCart(t *testing.T) {
	sut := newRepo(t)
	sut.AddToCart(AddToCartParams{ProductID: 1, Price: 10})
	sut.AddToCart(AddToCartParams{ProductID: 2, Price: 20})

	sut.ClearCart()

	assert.Equal(t, 0, sut.Cart().Len())
}

func TestSubscribe_NotifiedOncePerMutation(t *testing.T) {
	sut := newRepo(t)

	var carts []domain.Cart
	unsubscribe := sut.Subscribe(func(c domain.Cart) { carts = append(carts, c) })

	sut.AddToCart(AddToCartParams{ProductID: 1, Price: 10})
	require.Len(t, carts, 1)
	assert.Equal(t, 1, carts[0].TotalItems())

	unsubscribe()
	sut.AddToCart(AddToCartParams{ProductID: 2, Price: 20})
	assert.Len(t, carts, 1, "listener must not fire after unsubscribe")
}
