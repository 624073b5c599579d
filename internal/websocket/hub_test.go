package websocket

import (
	"context"
	"testing"
	"time"

	"workout-generator-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub(logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	return hub, func() {
		cancel()
		<-done
	}
}

func newClient(hub *Hub, buffer int) *Client {
	return &Client{Hub: hub, ID: uuid.New(), Send: make(chan []byte, buffer)}
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	a, b := newClient(hub, 4), newClient(hub, 4)
	hub.register <- a
	hub.register <- b
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte(`{"type":"EXERCISE_CREATED"}`))

	assert.Equal(t, `{"type":"EXERCISE_CREATED"}`, string(<-a.Send))
	assert.Equal(t, `{"type":"EXERCISE_CREATED"}`, string(<-b.Send))
}

func TestHubDropsSlowClient(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	slow := newClient(hub, 1)
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second"))

	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, "first", string(<-slow.Send))
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	c := newClient(hub, 1)
	hub.register <- c
	hub.unregister <- c
	hub.unregister <- c

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubStopClosesClients(t *testing.T) {
	hub, stop := startHub(t)

	c := newClient(hub, 1)
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	stop()

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())
}
