package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/digiadi/digiadi-backend/models"
)

// Event types pushed to connected displays.
const (
	EventOrderCreate   = "order_create"
	EventOrderItemAdd  = "order_item_add"
	EventOrderReady    = "order_ready"
	EventOrderComplete = "order_complete"
	EventOrderDelete   = "order_delete"
	EventTableUpdate   = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected display (kitchen screens, waiter tablets) keyed
// by the role it announced on connect.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount reports the number of connected displays.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{Event: EventOrderCreate, Data: order})
}

func BroadcastOrderItemAdd(item models.OrderItem) {
	broadcast(Message{Event: EventOrderItemAdd, Data: item})
}

func BroadcastOrderReady(orderID uint) {
	broadcast(Message{Event: EventOrderReady, Data: map[string]interface{}{"order_id": orderID}})
}

func BroadcastOrderComplete(orderID uint, tableID uint) {
	broadcast(Message{
		Event: EventOrderComplete,
		Data:  map[string]interface{}{"order_id": orderID, "table_id": tableID},
	})
}

func BroadcastOrderDelete(orderID uint, tableID uint) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]interface{}{"order_id": orderID, "table_id": tableID},
	})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// drop dead connections on write failure
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
