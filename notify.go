package cart

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/cart/models"
	"goflare.io/cart/models/enum"
)

// SubjectCartUpdated carries the post-transition cart snapshot for any
// surface that renders the cart.
const SubjectCartUpdated = "cart.state.updated"

// CartUpdate is the notification payload.
type CartUpdate struct {
	Command enum.CommandKind `json:"command"`
	State   models.CartState `json:"state"`
}

// Notifier publishes cart transitions over NATS. A Notifier without a
// connection is valid and publishes nothing, so the facade works offline.
type Notifier struct {
	natsConn *nats.Conn
	logger   *zap.Logger
}

func NewNotifier(natsConn *nats.Conn, logger *zap.Logger) *Notifier {
	return &Notifier{
		natsConn: natsConn,
		logger:   logger,
	}
}

func (n *Notifier) Publish(kind enum.CommandKind, state models.CartState) {
	if n == nil || n.natsConn == nil {
		return
	}

	data, err := json.Marshal(CartUpdate{Command: kind, State: state})
	if err != nil {
		n.logger.Error("Failed to marshal cart update", zap.Error(err))
		return
	}

	if err := n.natsConn.Publish(SubjectCartUpdated, data); err != nil {
		n.logger.Warn("Failed to publish cart update",
			zap.String("command", string(kind)),
			zap.Error(err))
	}
}
