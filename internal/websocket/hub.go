package websocket

import (
	"log"
	"sync"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	BroadcastAll(msg OutgoingMessage)
	SendToPlayer(id string, msg OutgoingMessage)
	ClientByID(id string) (*Client, bool)
	Close()
}

type Hub struct {
	clients      map[string]*Client // playerId -> client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan broadcastReq
	broadcastAll chan OutgoingMessage
	sendOne      chan sendReq
	incoming     chan IncomingMessage
	OnIncoming   func(IncomingMessage)
	OnDisconnect func(playerID string)
	quit         chan struct{}
	mu           sync.RWMutex
}

type broadcastReq struct {
	PlayerIDs []string
	Message   OutgoingMessage
}

type sendReq struct {
	PlayerID string
	Message  OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[string]*Client),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan broadcastReq),
		broadcastAll: make(chan OutgoingMessage),
		sendOne:      make(chan sendReq),
		incoming:     make(chan IncomingMessage),
		quit:         make(chan struct{}),
	}
}

func (h *Hub) Run() {

	log.Println("Hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.PlayerID] = c
			log.Printf("Hub.register -> %s (当前连接数: %d)", c.PlayerID, len(h.clients))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.PlayerID]; ok {
				delete(h.clients, c.PlayerID)
				log.Printf("Hub.unregister -> %s (当前连接数: %d)", c.PlayerID, len(h.clients))
				close(c.Send)
			}
			h.mu.Unlock()
			// !!!! 断线要通知游戏层移除座位
			if h.OnDisconnect != nil {
				h.OnDisconnect(c.PlayerID)
			}

		case req := <-h.broadcast:
			for _, id := range req.PlayerIDs {
				if client, ok := h.clients[id]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// 慢客户端丢弃，不能卡住整个房间
					}
				}
			}

		case msg := <-h.broadcastAll:
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
				}
			}

		case req := <-h.sendOne:
			if client, ok := h.clients[req.PlayerID]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}

		case req := <-h.incoming:
			// !!!! 这里把玩家消息统一转发给游戏层（GameManager）
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			return
		}
	}
}

// Broadcast to multiple players
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{
		PlayerIDs: ids,
		Message:   msg,
	}
}

// Broadcast to everyone connected (room list updates)
func (h *Hub) BroadcastAll(msg OutgoingMessage) {
	h.broadcastAll <- msg
}

// Send to a single player (safe concurrent)
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	h.sendOne <- sendReq{
		PlayerID: id,
		Message:  msg,
	}
}

// Lookup for a player client by id
func (h *Hub) ClientByID(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

func (h *Hub) Close() {
	close(h.quit)
}
