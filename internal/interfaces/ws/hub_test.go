package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/interfaces/ws"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) snapshot() ([][]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.messages...), f.closed
}

func TestHub_BroadcastsToRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := ws.NewHub(zerolog.Nop())
	go hub.Run(ctx)

	good := &fakeClient{}
	broken := &fakeClient{fail: true}
	hub.Register(good)
	hub.Register(broken)

	hub.PublishStockChange(ports.StockChange{ItemID: "i-1", Quantity: decimal.NewFromInt(7), Reason: "RECEIPT"})

	require.Eventually(t, func() bool {
		msgs, _ := good.snapshot()
		return len(msgs) == 1
	}, time.Second, 10*time.Millisecond)

	msgs, _ := good.snapshot()
	var got ws.Message
	require.NoError(t, json.Unmarshal(msgs[0], &got))
	assert.Equal(t, "stock_update", got.Type)
	assert.Equal(t, "i-1", got.Event.ItemID)
	assert.True(t, got.Event.Quantity.Equal(decimal.NewFromInt(7)))

	assert.Eventually(t, func() bool {
		_, closed := broken.snapshot()
		return closed
	}, time.Second, 10*time.Millisecond)
}

func TestHub_ClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &fakeClient{}
	hub.Register(c)
	cancel()
	<-done

	_, closed := c.snapshot()
	assert.True(t, closed)
}

func TestHub_PublishDoesNotBlockWithoutRun(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.PublishStockChange(ports.StockChange{ItemID: "i"})
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishStockChange bloqueó")
	}
}
