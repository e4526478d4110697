package routes

import (
	"penpals_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the shared informational endpoints
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
}
