package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Для разработки разрешаем все источники
	},
}

// GlobalHub - единственный экземпляр хаба для всего приложения.
var GlobalHub = NewHub()

// ScheduleEvent - сообщение об изменении расписания, рассылаемое
// открытым страницам панели.
type ScheduleEvent struct {
	Event    string           `json:"event"` // schedule_created | schedule_updated | schedule_deleted
	Schedule *models.Schedule `json:"schedule"`
}

type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub раздает события об изменениях расписания всем подключенным клиентам.
type Hub struct {
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		clients:    make(map[*wsClient]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("Schedule watcher connected", "total", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать - отключаем его.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify сериализует событие и рассылает его. Неблокирующая отправка:
// операции записи расписания не должны ждать медленных подписчиков.
func (h *Hub) Notify(event string, schedule *models.Schedule) {
	data, err := json.Marshal(ScheduleEvent{Event: event, Schedule: schedule})
	if err != nil {
		slog.Error("Failed to marshal schedule event", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		slog.Warn("Schedule event dropped, broadcast channel full")
	}
}

// ScheduleWSEndpoint поднимает websocket-подключение для живых обновлений
// расписания на панели.
func ScheduleWSEndpoint(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := &wsClient{hub: GlobalHub, conn: conn, send: make(chan []byte, 16)}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}

func (cl *wsClient) writePump() {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case message, ok := <-cl.send:
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump только следит за разрывом соединения: клиенты ничего не присылают.
func (cl *wsClient) readPump() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
