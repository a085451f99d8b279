package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundry/internal/adapters/out/notify"
	"laundry/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// socketPair returns the server side of a fresh socket, with no writer
// started, and the dialled client side.
func socketPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- socket
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server := <-accepted:
		return server, client
	case <-time.After(5 * time.Second):
		t.Fatal("server never accepted the socket")
		return nil, nil
	}
}

func TestConnSend_WriterDeliversInOrder(t *testing.T) {
	server, client := socketPair(t)
	c := newConn(server)
	go c.writePump()
	t.Cleanup(func() { c.close(errReaderFinished) })

	for i := range 3 {
		require.NoError(t, c.Send("order_updated", i))
	}

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := range 3 {
		var got struct {
			Event string `json:"event"`
			Data  int    `json:"data"`
		}
		require.NoError(t, client.ReadJSON(&got))
		assert.Equal(t, "order_updated", got.Event)
		assert.Equal(t, i, got.Data)
	}
}

func TestConnSend_FullQueueClosesInsteadOfBlocking(t *testing.T) {
	server, client := socketPair(t)
	c := newConn(server)

	// Nothing drains the queue, as if the writer were stuck on a dead peer.
	for i := range sendQueueSize {
		require.NoError(t, c.Send("order_updated", i))
	}

	start := time.Now()
	err := c.Send("order_updated", "overflow")

	require.ErrorIs(t, err, errSendQueueFull)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, c.closeCause(), errSendQueueFull)
	assert.ErrorIs(t, c.Send("order_updated", "late"), errConnClosed)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = client.ReadMessage()
	assert.Error(t, err, "peer sees the socket close")
}

func TestConnSend_RejectsUnencodablePayload(t *testing.T) {
	server, _ := socketPair(t)
	c := newConn(server)
	t.Cleanup(func() { c.close(errReaderFinished) })

	err := c.Send("order_updated", make(chan int))

	require.ErrorAs(t, err, new(*json.UnsupportedTypeError))
	assert.Empty(t, c.send)
}

func TestBusFanOut_StalledSocketDoesNotDelayOthers(t *testing.T) {
	stalledServer, _ := socketPair(t)
	liveServer, liveClient := socketPair(t)

	stalled := newConn(stalledServer)
	live := newConn(liveServer)
	go live.writePump()
	t.Cleanup(func() {
		stalled.close(errReaderFinished)
		live.close(errReaderFinished)
	})

	dir := notify.NewDirectory()
	partner, err := kernel.NewActor(kernel.NewUUID(), kernel.RolePartner)
	require.NoError(t, err)
	dir.Register(partner, stalled)
	dir.Register(partner, live)
	bus := notify.NewBus(dir, nil)

	for i := range sendQueueSize {
		require.NoError(t, stalled.Send("order_updated", i))
	}

	start := time.Now()
	delivered, err := bus.EmitToUser(partner.ID(), "order_updated", "next")

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, delivered)
	require.ErrorIs(t, err, errSendQueueFull)
	assert.ErrorIs(t, stalled.closeCause(), errSendQueueFull)

	require.NoError(t, liveClient.SetReadDeadline(time.Now().Add(5*time.Second)))
	var got struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}
	require.NoError(t, liveClient.ReadJSON(&got))
	assert.Equal(t, "next", got.Data)
}
