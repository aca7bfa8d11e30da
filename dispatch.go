package cart

import (
	"go.uber.org/zap"

	"goflare.io/cart/aggregate"
	"goflare.io/cart/models"
)

// Dispatcher funnels every command source (UI facade, remote snapshot feed)
// onto one goroutine, so command application is serialized end to end: each
// mutation plus its scalar recompute completes before the next command is
// admitted.
type Dispatcher struct {
	tasks  chan func()
	done   chan struct{}
	store  *aggregate.Store
	logger *zap.Logger
}

func NewDispatcher(store *aggregate.Store, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		tasks:  make(chan func(), 1000),
		done:   make(chan struct{}),
		store:  store,
		logger: logger,
	}

	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for task := range d.tasks {
		task()
	}
}

// Dispatch applies cmd and waits for the resulting snapshot.
func (d *Dispatcher) Dispatch(cmd aggregate.Command) models.CartState {
	result := make(chan models.CartState, 1)
	d.tasks <- func() {
		result <- d.store.Dispatch(cmd)
	}
	return <-result
}

// Submit enqueues cmd without waiting for the result. Used by the remote
// snapshot feed, which has no caller to report back to.
func (d *Dispatcher) Submit(cmd aggregate.Command) {
	d.tasks <- func() {
		d.store.Dispatch(cmd)
	}
}

// Shutdown drains the queue and stops the dispatch goroutine.
func (d *Dispatcher) Shutdown() {
	close(d.tasks)
	<-d.done
	d.logger.Debug("cart dispatcher stopped")
}
