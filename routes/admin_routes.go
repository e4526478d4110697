package routes

import (
	"penpals_server/controllers"
	"penpals_server/services"

	"github.com/gorilla/mux"
)

// RegisterAdminRoutes sets up the password-gated admin surface under /admin
func RegisterAdminRoutes(r *mux.Router, matchService *services.MatchService, chatService *services.ChatService, password string) {
	controller := controllers.NewAdminController(matchService, chatService, password)

	adminRouter := r.PathPrefix("/admin").Subrouter()

	// Login takes the password in the body; everything else requires the
	// X-Admin-Password header.
	adminRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")

	gated := adminRouter.NewRoute().Subrouter()
	gated.Use(controller.RequirePassword)
	gated.HandleFunc("/unmatched", controller.HandleUnmatched).Methods("GET")
	gated.HandleFunc("/matches", controller.HandleMatches).Methods("GET")
	gated.HandleFunc("/conversation/{email1}/{email2}", controller.HandleConversation).Methods("GET")
	gated.HandleFunc("/match", controller.HandleCreateMatch).Methods("POST")
}
