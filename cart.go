// Package cart is the storefront cart: a pure aggregation core (aggregate)
// fronted by a Service that enriches lines from the catalog, serializes
// command application and notifies listeners of every transition.
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/cart/aggregate"
	"goflare.io/cart/catalog"
	"goflare.io/cart/models"
)

type Service interface {
	// AddProduct looks the product up in the catalog, builds a line item
	// priced at the catalog price with the display snapshot attached, and
	// adds it to the cart.
	AddProduct(ctx context.Context, productID string, quantity int64) (models.CartState, error)

	// AddLine adds a caller-built line item as-is.
	AddLine(ctx context.Context, item models.LineItem) (models.CartState, error)

	UpdateQuantity(ctx context.Context, lineID string, quantity int64) (models.CartState, error)
	RemoveLine(ctx context.Context, lineID string) (models.CartState, error)
	Clear(ctx context.Context) models.CartState

	// ApplySnapshot replaces the cart wholesale with an externally supplied
	// snapshot. The snapshot is trusted; nothing is re-verified.
	ApplySnapshot(ctx context.Context, state models.CartState) models.CartState

	Snapshot() models.CartState

	// Dispatcher exposes the serialized command sink for additional command
	// sources, e.g. the remote snapshot feed.
	Dispatcher() *Dispatcher

	Close()
}

type service struct {
	catalog    catalog.Service
	store      *aggregate.Store
	dispatcher *Dispatcher
	notifier   *Notifier
	logger     *zap.Logger
}

// NewService wires the cart. catalogSvc may be nil if AddProduct is unused;
// natsConn may be nil to disable notifications.
func NewService(catalogSvc catalog.Service, natsConn *nats.Conn, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	store := aggregate.NewStore(logger)
	s := &service{
		catalog: catalogSvc,
		store:   store,
		logger:  logger,
	}
	s.dispatcher = NewDispatcher(store, logger)
	s.notifier = NewNotifier(natsConn, logger)

	return s
}

func (s *service) Dispatcher() *Dispatcher {
	return s.dispatcher
}

func (s *service) AddProduct(ctx context.Context, productID string, quantity int64) (models.CartState, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return models.CartState{}, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}

	item := models.LineItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.CatalogPrice,
		Product:   product,
	}

	return s.AddLine(ctx, item)
}

func (s *service) AddLine(_ context.Context, item models.LineItem) (models.CartState, error) {
	cmd, err := aggregate.NewAddItem(item)
	if err != nil {
		return models.CartState{}, err
	}

	state := s.dispatcher.Dispatch(cmd)
	s.notifier.Publish(cmd.Kind(), state)

	s.logger.Info("Line item added",
		zap.String("line_id", item.ID),
		zap.String("product_id", item.ProductID),
		zap.Int64("quantity", item.Quantity),
		zap.Float64("subtotal", state.Subtotal))

	return state, nil
}

func (s *service) UpdateQuantity(_ context.Context, lineID string, quantity int64) (models.CartState, error) {
	cmd, err := aggregate.NewUpdateQuantity(lineID, quantity)
	if err != nil {
		return models.CartState{}, err
	}

	state := s.dispatcher.Dispatch(cmd)
	s.notifier.Publish(cmd.Kind(), state)

	return state, nil
}

func (s *service) RemoveLine(_ context.Context, lineID string) (models.CartState, error) {
	cmd, err := aggregate.NewRemoveItem(lineID)
	if err != nil {
		return models.CartState{}, err
	}

	state := s.dispatcher.Dispatch(cmd)
	s.notifier.Publish(cmd.Kind(), state)

	return state, nil
}

func (s *service) Clear(_ context.Context) models.CartState {
	cmd := aggregate.NewClearCart()
	state := s.dispatcher.Dispatch(cmd)
	s.notifier.Publish(cmd.Kind(), state)

	s.logger.Info("Cart cleared")

	return state
}

func (s *service) ApplySnapshot(_ context.Context, snapshot models.CartState) models.CartState {
	cmd := aggregate.NewSetState(snapshot)
	state := s.dispatcher.Dispatch(cmd)
	s.notifier.Publish(cmd.Kind(), state)

	s.logger.Info("Cart snapshot applied",
		zap.Int("item_count", state.ItemCount),
		zap.Float64("subtotal", state.Subtotal))

	return state
}

func (s *service) Snapshot() models.CartState {
	return s.store.Snapshot()
}

func (s *service) Close() {
	s.dispatcher.Shutdown()
}
