package kds_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/digiadi/digiadi-backend/kds"
	"github.com/digiadi/digiadi-backend/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestBroadcastReachesClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		kds.RegisterClient(conn, "kitchen")
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	defer client.Close()

	// registration happens in the server goroutine; wait for it
	deadline := time.Now().Add(2 * time.Second)
	for kds.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 1, kds.ClientCount())

	order := models.Order{ID: 42, TableID: 7, IsActive: true}
	kds.BroadcastOrderCreate(order)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	assert.NoError(t, err)

	var msg kds.Message
	assert.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, kds.EventOrderCreate, msg.Event)

	data := msg.Data.(map[string]interface{})
	assert.Equal(t, float64(42), data["id"])
	assert.Equal(t, float64(7), data["table_id"])
}
