package routes

import (
	"penpals_server/controllers"
	"penpals_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up user lookup, intro submission, and stats
func RegisterUserRoutes(r *mux.Router, service *services.UserService) {
	controller := controllers.NewUserController(service)

	r.HandleFunc("/users/{email}", controller.HandleGetUser).Methods("GET")
	r.HandleFunc("/intro", controller.HandleSubmitIntro).Methods("POST")
	r.HandleFunc("/stats", controller.HandleGetStats).Methods("GET")
}
