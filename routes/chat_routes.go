package routes

import (
	"sparkd_server/controllers"
	"sparkd_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the chat-room routes under /api/chats
func RegisterChatRoutes(r *mux.Router, chats *services.ChatService) {
	controller := controllers.NewChatController(chats)

	chatRouter := r.PathPrefix("/api/chats").Subrouter()

	chatRouter.HandleFunc("/findRoom", controller.HandleFindRoom).Methods("POST")
	chatRouter.HandleFunc("/history", controller.HandleChatHistory).Methods("GET")
}
