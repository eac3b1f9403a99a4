package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// dialHub spins up a server that registers every incoming connection for
// userID and returns a client-side connection.
func dialHub(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	conn := &websocket.Conn{}

	require.Equal(t, 0, hub.ConnectionCount(1))

	hub.Register(1, conn)
	require.Equal(t, 1, hub.ConnectionCount(1))

	hub.Unregister(1, conn)
	require.Equal(t, 0, hub.ConnectionCount(1))

	// Unregistering twice is harmless.
	hub.Unregister(1, conn)
	require.Equal(t, 0, hub.ConnectionCount(1))
}

func TestHubSendToUser(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, 42)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount(42) == 0 {
		require.True(t, time.Now().Before(deadline), "connection was never registered")
		time.Sleep(10 * time.Millisecond)
	}

	hub.SendToUser(42, map[string]string{"type": "invite"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))

	var message map[string]string
	require.NoError(t, client.ReadJSON(&message))
	require.Equal(t, "invite", message["type"])
}

func TestHubConcurrentSendsToOneConnection(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, 42)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount(42) == 0 {
		require.True(t, time.Now().Before(deadline), "connection was never registered")
		time.Sleep(10 * time.Millisecond)
	}

	const pushes = 8

	var wg sync.WaitGroup
	for i := 0; i < pushes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToUser(42, map[string]string{"type": "application_status"})
		}()
	}
	wg.Wait()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))

	for i := 0; i < pushes; i++ {
		var message map[string]string
		require.NoError(t, client.ReadJSON(&message))
		require.Equal(t, "application_status", message["type"])
	}
}

func TestHubSendToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()

	// Must not panic or block.
	hub.SendToUser(7, map[string]string{"type": "invite"})
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	first := dialHub(t, hub, 9)
	second := dialHub(t, hub, 9)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount(9) < 2 {
		require.True(t, time.Now().Before(deadline), "connections were never registered")
		time.Sleep(10 * time.Millisecond)
	}

	hub.SendToUser(9, map[string]string{"type": "task_done"})

	for _, client := range []*websocket.Conn{first, second} {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))

		var message map[string]string
		require.NoError(t, client.ReadJSON(&message))
		require.Equal(t, "task_done", message["type"])
	}
}
