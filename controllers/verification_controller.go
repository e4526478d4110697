package controllers

import (
	"encoding/json"
	"net/http"

	"penpals_server/services"
)

// VerificationController handles the code request/confirm flow
type VerificationController struct {
	Service *services.VerificationService
}

func NewVerificationController(service *services.VerificationService) *VerificationController {
	return &VerificationController{Service: service}
}

// HandleRequestCode issues a verification code and mails it
func (c *VerificationController) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if err := c.Service.RequestCode(r.Context(), request.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Verification code sent"})
}

// HandleConfirmCode checks a code and signs the user in
func (c *VerificationController) HandleConfirmCode(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" || request.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and code are required"})
		return
	}

	user, err := c.Service.VerifyCode(r.Context(), request.Email, request.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}
