package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bramble/app/auth"
	"bramble/app/repositories"
	"bramble/app/services"
)

// AuthController handles registration and login
type AuthController struct {
	userService *services.UserService
	tokens      *auth.TokenManager
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, tokens *auth.TokenManager) *AuthController {
	return &AuthController{userService: userService, tokens: tokens}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Signup handles user registration
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.userService.Register(creds.Username, creds.Password)
	if errors.Is(err, repositories.ErrDuplicate) {
		sendError(w, "Username already taken", http.StatusConflict)
		return
	}
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ac.issueToken(w, user.ID, user.Username, http.StatusCreated)
}

// Login handles authentication and token issuance
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.userService.Authenticate(creds.Username, creds.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		sendError(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		sendError(w, "Failed to authenticate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ac.issueToken(w, user.ID, user.Username, http.StatusOK)
}

func (ac *AuthController) issueToken(w http.ResponseWriter, userID int, username string, status int) {
	token, err := ac.tokens.GenerateToken(userID, username)
	if err != nil {
		sendError(w, "Failed to issue token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	sendJSON(w, status, tokenResponse{Token: token, Username: username})
}
