package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/warungku/warung-app/utils"
)

// Event types
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventStaffNotif         = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn     *websocket.Conn
	tenantID uint
}

// StaffHub menampung koneksi staff per tenant. Broadcast hanya sampai ke
// staff tenant yang bersangkutan; tenant lain tidak pernah menerima event
// yang bukan miliknya.
type StaffHub struct {
	clients map[string]*client // client id -> conn
	mutex   sync.Mutex
}

var staffHub = StaffHub{
	clients: make(map[string]*client),
}

// RegisterClient mendaftarkan koneksi staff untuk satu tenant dan
// mengembalikan id koneksi untuk unregister.
func RegisterClient(conn *websocket.Conn, tenantID uint) string {
	id := uuid.NewString()
	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()
	staffHub.clients[id] = &client{conn: conn, tenantID: tenantID}
	return id
}

// UnregisterClient melepaskan koneksi.
func UnregisterClient(id string) {
	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()
	if c, ok := staffHub.clients[id]; ok {
		delete(staffHub.clients, id)
		c.conn.Close()
	}
}

// BroadcastOrderCreated menyiarkan order baru ke staff tenant pemiliknya.
func BroadcastOrderCreated(tenantID uint, data interface{}) {
	broadcast(tenantID, Message{
		Event: EventOrderCreated,
		Data:  data,
	})
}

// BroadcastOrderStatusChanged menyiarkan perubahan status order.
func BroadcastOrderStatusChanged(tenantID uint, data interface{}) {
	broadcast(tenantID, Message{
		Event: EventOrderStatusChanged,
		Data:  data,
	})
}

// BroadcastStaffNotification mengirim pesan teks bebas ke staff tenant.
func BroadcastStaffNotification(tenantID uint, message string) {
	broadcast(tenantID, Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func broadcast(tenantID uint, msg Message) {
	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("ws: error marshaling message: %v", err)
		return
	}

	for id, c := range staffHub.clients {
		if c.tenantID != tenantID {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("ws: error sending to client %s: %v", id, err)
		}
	}
}
