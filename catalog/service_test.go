package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/cart/models"
)

type mockRepository struct {
	m        sync.Mutex
	products map[string]*models.Product
	stock    map[string]bool
	calls    int
	err      error
}

func (m *mockRepository) GetProduct(_ context.Context, _ pgx.Tx, productID string) (*models.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := p.Clone()
	return &cp, nil
}

func (m *mockRepository) StockAvailable(_ context.Context, _ pgx.Tx, productID string) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.stock[productID], nil
}

type mockCache struct {
	m        sync.Mutex
	products map[string]*models.Product
	getErr   error
}

func (m *mockCache) Get(_ context.Context, productID string) (*models.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return p, nil
}

func (m *mockCache) Set(_ context.Context, product *models.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.products == nil {
		m.products = make(map[string]*models.Product)
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockCache) Delete(_ context.Context, productID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.products, productID)
	return nil
}

func (m *mockCache) has(productID string) bool {
	m.m.Lock()
	defer m.m.Unlock()
	_, ok := m.products[productID]
	return ok
}

func TestGetProductCacheMissFallsBackToRepo(t *testing.T) {
	repo := &mockRepository{
		products: map[string]*models.Product{
			"p1": {ID: "p1", Name: "Lamp", CatalogPrice: 10},
		},
		stock: map[string]bool{"p1": true},
	}
	cache := &mockCache{}
	svc := NewService(repo, cache, nil, zap.NewNop())

	product, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", product.Name)
	assert.True(t, product.InStock)

	// Cache backfill is async.
	assert.Eventually(t, func() bool { return cache.has("p1") }, time.Second, 10*time.Millisecond)
}

func TestGetProductCacheHitSkipsRepo(t *testing.T) {
	repo := &mockRepository{}
	cache := &mockCache{
		products: map[string]*models.Product{
			"p1": {ID: "p1", Name: "Lamp"},
		},
	}
	svc := NewService(repo, cache, nil, zap.NewNop())

	product, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", product.Name)
	assert.Zero(t, repo.calls)
}

func TestGetProductCacheErrorIsNotFatal(t *testing.T) {
	repo := &mockRepository{
		products: map[string]*models.Product{
			"p1": {ID: "p1", Name: "Lamp"},
		},
		stock: map[string]bool{},
	}
	cache := &mockCache{getErr: errors.New("redis down")}
	svc := NewService(repo, cache, nil, zap.NewNop())

	product, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", product.Name)
	assert.False(t, product.InStock)
}

func TestGetProductNotFound(t *testing.T) {
	repo := &mockRepository{products: map[string]*models.Product{}}
	svc := NewService(repo, nil, nil, zap.NewNop())

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductRepoError(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection reset")}
	svc := NewService(repo, nil, nil, zap.NewNop())

	_, err := svc.GetProduct(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
