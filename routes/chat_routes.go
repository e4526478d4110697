package routes

import (
	"penpals_server/controllers"
	"penpals_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for sending and viewing letters
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, matchService *services.MatchService) {
	controller := controllers.NewChatController(chatService, matchService)

	r.HandleFunc("/messages", controller.HandleSendMessage).Methods("POST")
	r.HandleFunc("/conversation/{email}", controller.HandleGetConversation).Methods("GET")
	r.HandleFunc("/conversation/{email}/end", controller.HandleEndConversation).Methods("POST")
}
