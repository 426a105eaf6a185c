package controllers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nahead/admin-dashboard/utils"
)

// AuthController handles the admin login
type AuthController struct {
	Logger *logrus.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(logger *logrus.Logger) *AuthController {
	return &AuthController{Logger: logger}
}

// Login authenticates the admin operator against ADMIN_EMAIL and the
// bcrypt hash in ADMIN_PASSWORD_HASH and issues a session token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// Decode the request body
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || passwordHash == "" {
		ac.Logger.Error("admin credentials are not configured")
		http.Error(w, "Login unavailable", http.StatusServiceUnavailable)
		return
	}

	if creds.Email != adminEmail {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Compare the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Generate session token
	token, err := utils.GenerateJWT(creds.Email, "admin")
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	// Return the token
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
