package controllers

import (
	"encoding/json"
	"net/http"

	"penpals_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles sending letters and viewing conversations
type ChatController struct {
	ChatService  *services.ChatService
	MatchService *services.MatchService
}

func NewChatController(chatService *services.ChatService, matchService *services.MatchService) *ChatController {
	return &ChatController{ChatService: chatService, MatchService: matchService}
}

// HandleSendMessage appends a letter addressed to the sender's partner
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email   string `json:"email"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.Email, request.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": message})
}

// HandleGetConversation returns the caller's redacted conversation view.
// Unknown or unmatched users get an empty list, not an error.
func (c *ChatController) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	messages, err := c.ChatService.Conversation(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// HandleEndConversation unmatches the caller and their partner
func (c *ChatController) HandleEndConversation(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	if err := c.MatchService.EndConversation(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
