package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"penpals_server/services"

	"github.com/gorilla/mux"
)

// AdminController handles the password-gated oversight surface
type AdminController struct {
	MatchService *services.MatchService
	ChatService  *services.ChatService
	Password     string
}

func NewAdminController(matchService *services.MatchService, chatService *services.ChatService, password string) *AdminController {
	return &AdminController{MatchService: matchService, ChatService: chatService, Password: password}
}

func (c *AdminController) passwordOK(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
}

// RequirePassword checks the X-Admin-Password header on every admin route.
func (c *AdminController) RequirePassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.passwordOK(r.Header.Get("X-Admin-Password")) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid admin password"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleLogin checks the admin password supplied in the body
func (c *AdminController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !c.passwordOK(request.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid admin password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleUnmatched lists users waiting for a match
func (c *AdminController) HandleUnmatched(w http.ResponseWriter, r *http.Request) {
	users, err := c.MatchService.UnmatchedWithIntro(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// HandleMatches lists active pairings with aggregate stats
func (c *AdminController) HandleMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := c.MatchService.ActiveMatches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// HandleConversation returns the raw conversation between two users
func (c *AdminController) HandleConversation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	messages, err := c.ChatService.ConversationBetween(r.Context(), vars["email1"], vars["email2"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// HandleCreateMatch pairs two users
func (c *AdminController) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email1 string `json:"email1"`
		Email2 string `json:"email2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email1 == "" || request.Email2 == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email1 and email2 are required"})
		return
	}

	if err := c.MatchService.Match(r.Context(), request.Email1, request.Email2); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
