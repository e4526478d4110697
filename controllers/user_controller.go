package controllers

import (
	"encoding/json"
	"net/http"

	"penpals_server/services"

	"github.com/gorilla/mux"
)

// UserController handles user lookup, intro submission, and stats
type UserController struct {
	Service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

// HandleGetUser fetches a user by email
func (c *UserController) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := c.Service.GetUser(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleSubmitIntro stores the user's introduction
func (c *UserController) HandleSubmitIntro(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
		Intro string `json:"intro"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	user, err := c.Service.SubmitIntro(r.Context(), request.Email, request.Intro)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}

// HandleGetStats reports the informational counters
func (c *UserController) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
