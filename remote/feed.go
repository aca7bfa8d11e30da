// Package remote delivers externally supplied cart snapshots into the
// aggregator. Only the accepted snapshot shape is defined here; how the
// remote side produces it is its own business.
package remote

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/cart/aggregate"
	"goflare.io/cart/models"
)

// DefaultSubject is the subject the feed listens on when none is given.
const DefaultSubject = "cart.remote.snapshot"

// Dispatcher is the serialized command sink snapshots are forwarded to.
type Dispatcher interface {
	Submit(cmd aggregate.Command)
}

// Feed subscribes to a NATS subject and forwards each decoded snapshot to
// the dispatcher as a wholesale replace.
type Feed struct {
	natsConn   *nats.Conn
	subject    string
	dispatcher Dispatcher
	logger     *zap.Logger
	sub        *nats.Subscription
}

func NewFeed(natsConn *nats.Conn, subject string, dispatcher Dispatcher, logger *zap.Logger) *Feed {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		natsConn:   natsConn,
		subject:    subject,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (f *Feed) Subscribe() error {
	sub, err := f.natsConn.Subscribe(f.subject, func(msg *nats.Msg) {
		f.handle(msg.Data)
	})
	if err != nil {
		return err
	}

	f.sub = sub
	f.logger.Info("Subscribed to remote cart snapshots", zap.String("subject", f.subject))

	return nil
}

// handle decodes one snapshot payload. Malformed payloads are logged and
// dropped; the current cart state stays untouched.
func (f *Feed) handle(data []byte) {
	var snapshot models.CartState
	if err := json.Unmarshal(data, &snapshot); err != nil {
		f.logger.Error("Failed to unmarshal cart snapshot", zap.Error(err))
		return
	}

	f.dispatcher.Submit(aggregate.NewSetState(snapshot))
}

func (f *Feed) Unsubscribe() error {
	if f.sub == nil {
		return nil
	}
	return f.sub.Unsubscribe()
}
