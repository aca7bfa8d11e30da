package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/cart/aggregate"
	"goflare.io/cart/models"
)

type recordingDispatcher struct {
	commands []aggregate.Command
}

func (d *recordingDispatcher) Submit(cmd aggregate.Command) {
	d.commands = append(d.commands, cmd)
}

func TestHandleForwardsSnapshot(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	feed := NewFeed(nil, "", dispatcher, zap.NewNop())

	snapshot := models.CartState{
		Items: []models.LineItem{
			{ID: "i1", ProductID: "p1", Quantity: 2, UnitPrice: 10, TotalPrice: 20},
		},
		TotalItems: 2,
		Subtotal:   20,
		ItemCount:  1,
	}
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	feed.handle(data)

	require.Len(t, dispatcher.commands, 1)
	cmd, ok := dispatcher.commands[0].(aggregate.SetState)
	require.True(t, ok)
	assert.Equal(t, snapshot, cmd.State)
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	feed := NewFeed(nil, "", dispatcher, zap.NewNop())

	feed.handle([]byte(`{"items": not-json`))

	assert.Empty(t, dispatcher.commands)
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	feed := NewFeed(nil, "", &recordingDispatcher{}, nil)
	assert.NoError(t, feed.Unsubscribe())
}
