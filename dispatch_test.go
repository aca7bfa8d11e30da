package cart

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/cart/aggregate"
	"goflare.io/cart/models"
)

func TestDispatcherAppliesInOrder(t *testing.T) {
	store := aggregate.NewStore(zap.NewNop())
	d := NewDispatcher(store, zap.NewNop())
	defer d.Shutdown()

	add, err := aggregate.NewAddItem(models.LineItem{ID: "i1", ProductID: "p1", Quantity: 2, UnitPrice: 10})
	require.NoError(t, err)
	upd, err := aggregate.NewUpdateQuantity("i1", 5)
	require.NoError(t, err)
	rm, err := aggregate.NewRemoveItem("i1")
	require.NoError(t, err)

	state := d.Dispatch(add)
	assert.Equal(t, int64(2), state.TotalItems)

	state = d.Dispatch(upd)
	assert.Equal(t, int64(5), state.TotalItems)
	assert.Equal(t, 50.0, state.Subtotal)

	state = d.Dispatch(rm)
	assert.Zero(t, state.ItemCount)
}

func TestDispatcherSubmitIsApplied(t *testing.T) {
	store := aggregate.NewStore(zap.NewNop())
	d := NewDispatcher(store, zap.NewNop())

	add, err := aggregate.NewAddItem(models.LineItem{ID: "i1", ProductID: "p1", Quantity: 3, UnitPrice: 2})
	require.NoError(t, err)
	d.Submit(add)

	// Shutdown drains the queue before returning.
	d.Shutdown()

	assert.Equal(t, int64(3), store.Snapshot().TotalItems)
}

func TestDispatcherConcurrentDispatch(t *testing.T) {
	store := aggregate.NewStore(zap.NewNop())
	d := NewDispatcher(store, zap.NewNop())
	defer d.Shutdown()

	const goroutines = 10
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			cmd, err := aggregate.NewAddItem(models.LineItem{
				ID:        fmt.Sprintf("i%d", g),
				ProductID: fmt.Sprintf("p%d", g),
				Quantity:  1,
				UnitPrice: 1,
			})
			if !assert.NoError(t, err) {
				return
			}
			state := d.Dispatch(cmd)
			var total int64
			for _, item := range state.Items {
				total += item.Quantity
			}
			assert.Equal(t, total, state.TotalItems)
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines, store.Snapshot().ItemCount)
}
