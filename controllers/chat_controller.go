package controllers

import (
	"encoding/json"
	"net/http"

	"sparkd_server/services"
)

// ChatController serves the chat-room endpoints
type ChatController struct {
	Chats *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(chats *services.ChatService) *ChatController {
	return &ChatController{Chats: chats}
}

// HandleFindRoom returns the chat id for the caller and a target user,
// creating the room on first use
func (c *ChatController) HandleFindRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}

	var request struct {
		TargetUserID string `json:"targetUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.TargetUserID == "" {
		writeError(w, http.StatusBadRequest, "targetUserId is required")
		return
	}

	chatID, err := c.Chats.FindOrCreateRoom(r.Context(), userID, request.TargetUserID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"chatId": chatID})
}

// HandleChatHistory returns the full message log for a chat in
// insertion order
func (c *ChatController) HandleChatHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := authenticate(w, r); !ok {
		return
	}

	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "chatId is required")
		return
	}

	messages, err := c.Chats.GetChatHistory(r.Context(), chatID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
