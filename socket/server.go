package socket

import (
	"context"
	"log"
	"strings"

	"sparkd_server/models"
	"sparkd_server/services"
	"sparkd_server/utils"

	socketio "github.com/googollee/go-socket.io"
)

type sendMessagePayload struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

type markReadPayload struct {
	ChatID     string   `json:"chatId"`
	MessageIDs []string `json:"messageIds"`
}

// chatStore is what the event handlers need from the chat service
type chatStore interface {
	AppendMessage(ctx context.Context, chatID, senderID, content string) (models.Message, error)
	MarkMessagesRead(ctx context.Context, chatID string, messageIDs []string, readerID string) error
}

// roomBroadcaster is the fan-out half of the socket server
type roomBroadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// chatHandlers holds the realtime event handlers, decoupled from the
// socket.io server so they can run against fakes.
type chatHandlers struct {
	chats     chatStore
	registry  *ConnectionRegistry
	broadcast roomBroadcaster
	rooms     *roomLocks
}

func (h *chatHandlers) onConnect(s socketio.Conn) error {
	u := s.URL()
	token := u.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(s.RemoteHeader().Get("Authorization"), "Bearer ")
	}

	userID, err := utils.VerifyToken(token)
	if err != nil {
		log.Printf("❌ Socket auth failed for %s: %v", s.ID(), err)
		return err
	}

	s.SetContext(userID)
	h.registry.Register(userID, s)
	log.Printf("✅ Socket connected: %s (user %s)", s.ID(), userID)
	return nil
}

func (h *chatHandlers) onJoinChat(s socketio.Conn, chatID string) {
	if chatID == "" {
		s.Emit("error", map[string]string{"message": "chatId is required"})
		return
	}
	s.Join(chatID)
	s.Emit("joined_chat", chatID)
}

func (h *chatHandlers) onSendMessage(s socketio.Conn, payload sendMessagePayload) {
	userID, ok := s.Context().(string)
	if !ok {
		return
	}

	// One lock per room: the broadcast order seen by subscribers
	// is the append order. Other rooms proceed in parallel.
	lock := h.rooms.acquire(payload.ChatID)
	defer h.rooms.release(payload.ChatID, lock)

	message, err := h.chats.AppendMessage(context.Background(), payload.ChatID, userID, payload.Content)
	if err != nil {
		log.Printf("❌ Message error on chat %s: %v", payload.ChatID, err)
		s.Emit("error", map[string]string{"message": "Failed to send message"})
		return
	}

	h.broadcast.BroadcastToRoom("/", payload.ChatID, "receive_message", map[string]interface{}{
		"chatId":  payload.ChatID,
		"message": message,
	})
}

func (h *chatHandlers) onMarkRead(s socketio.Conn, payload markReadPayload) {
	userID, ok := s.Context().(string)
	if !ok {
		return
	}

	if err := h.chats.MarkMessagesRead(context.Background(), payload.ChatID, payload.MessageIDs, userID); err != nil {
		log.Printf("❌ Read receipt error on chat %s: %v", payload.ChatID, err)
		s.Emit("error", map[string]string{"message": "Failed to mark messages read"})
		return
	}

	// Best-effort notification; the stored read state is the
	// source of truth
	h.broadcast.BroadcastToRoom("/", payload.ChatID, "messages_read", map[string]interface{}{
		"chatId":     payload.ChatID,
		"userId":     userID,
		"messageIds": payload.MessageIDs,
	})
}

func (h *chatHandlers) onDisconnect(s socketio.Conn, reason string) {
	if userID, ok := s.Context().(string); ok {
		h.registry.Unregister(userID, s.ID())
	}
	s.LeaveAll()
	log.Printf("❌ Socket disconnected: %s (%s)", s.ID(), reason)
}

// NewSocketServer initializes the realtime chat server. Connections
// authenticate at handshake time, join rooms keyed by chatId, and
// exchange send/read events that are persisted before they fan out.
func NewSocketServer(chats *services.ChatService, registry *ConnectionRegistry) *socketio.Server {
	server := socketio.NewServer(nil)
	handlers := &chatHandlers{
		chats:     chats,
		registry:  registry,
		broadcast: server,
		rooms:     newRoomLocks(),
	}

	server.OnConnect("/", handlers.onConnect)
	server.OnEvent("/", "join_chat", handlers.onJoinChat)
	server.OnEvent("/", "send_message", handlers.onSendMessage)
	server.OnEvent("/", "mark_read", handlers.onMarkRead)

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Printf("⚠️ Socket error: %v", e)
	})

	server.OnDisconnect("/", handlers.onDisconnect)

	return server
}
