package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/internal/config"
	"tabula/internal/operations"
)

func testWSConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		PingPeriod:      30 * time.Second,
		PongWait:        60 * time.Second,
	}
}

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(Handler(hub, testWSConfig()))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestHubBroadcastReachesClient(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Shutdown()

	conn := dialTestHub(t, hub)

	// The connection greeting arrives first.
	msg := readMessage(t, conn)
	assert.Equal(t, TypeConnection, msg.Type)

	hub.Broadcast(TypeOperationProgress, map[string]string{"id": "op-1"})

	msg = readMessage(t, conn)
	assert.Equal(t, TypeOperationProgress, msg.Type)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "op-1", data["id"])
}

func TestHubRelayProgress(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Shutdown()

	tracker := operations.NewProgressTracker()
	cancel := hub.RelayProgress(tracker)
	defer cancel()

	conn := dialTestHub(t, hub)
	msg := readMessage(t, conn)
	require.Equal(t, TypeConnection, msg.Type)

	tracker.Publish(operations.OperationSnapshot{
		ID:     "op-7",
		Status: operations.OperationStatusRunning,
	})

	msg = readMessage(t, conn)
	assert.Equal(t, TypeOperationProgress, msg.Type)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "op-7", data["id"])
	assert.Equal(t, string(operations.OperationStatusRunning), data["status"])
}

func TestHubShutdownIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()

	hub.Shutdown()
	assert.NotPanics(t, hub.Shutdown)
}
