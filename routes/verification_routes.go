package routes

import (
	"penpals_server/controllers"
	"penpals_server/services"

	"github.com/gorilla/mux"
)

// RegisterVerificationRoutes sets up routes for the email verification flow
func RegisterVerificationRoutes(r *mux.Router, service *services.VerificationService) {
	controller := controllers.NewVerificationController(service)

	verifyRouter := r.PathPrefix("/verify").Subrouter()
	verifyRouter.HandleFunc("/request", controller.HandleRequestCode).Methods("POST")
	verifyRouter.HandleFunc("/confirm", controller.HandleConfirmCode).Methods("POST")
}
