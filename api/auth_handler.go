package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler handles POST /api/login
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Username and password are required", http.StatusBadRequest)
		return
	}

	if h.Users == nil {
		utils.RespondError(w, &logMessageBuilder, "Database service not ready", http.StatusServiceUnavailable)
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			utils.RespondError(w, &logMessageBuilder, "Invalid username or password", http.StatusUnauthorized)
		} else {
			respondAppError(w, &logMessageBuilder, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"success":  true,
		"user_id":  user.ID.Hex(),
		"username": user.Username,
	}

	if token, err := utils.GenerateToken(h.Config.JWTSecret, user.ID.Hex()); err == nil {
		response["token"] = token
	} else {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Login successful for %s", req.Username))
	utils.RespondJSON(w, http.StatusOK, response)
}

// RegisterHandler handles POST /api/register
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Register API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Username and password are required", http.StatusBadRequest)
		return
	}

	if h.Users == nil {
		utils.RespondError(w, &logMessageBuilder, "Database service not ready", http.StatusServiceUnavailable)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	if _, err := h.Users.CreateUser(r.Context(), req.Username, string(hashedPassword)); err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	// Welcome email is best effort and never blocks the response.
	// Only usable when the username is an email address.
	if h.Mailer != nil && h.Mailer.APIKey != "" && strings.Contains(req.Username, "@") {
		username := req.Username
		go func() {
			_ = h.Mailer.Send(username, username, "Welcome to AI Fashion Assistant",
				"Your wardrobe is ready. Upload a few clothing photos to get started.",
				"<h1>Welcome!</h1><p>Your wardrobe is ready. Upload a few clothing photos to get started.</p>")
		}()
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User %s registered", req.Username))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Registration successful",
	})
}
