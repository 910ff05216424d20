package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodmind/foodmind-backend/internal/db"
	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/middleware"
	"github.com/foodmind/foodmind-backend/internal/service"
)

const minPasswordLength = 6

type AccountStore interface {
	Create(ctx context.Context, id, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type AuthHandler struct {
	jwtSecret string
	repo      AccountStore
	resets    *service.PasswordResetService
}

func NewAuthHandler(jwtSecret string, repo AccountStore, resets *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, repo: repo, resets: resets}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	userID := uuid.NewString()
	if err := h.repo.Create(r.Context(), userID, req.Email, string(passwordHash)); err != nil {
		if db.IsDuplicateKey(err) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	h.issueToken(w, http.StatusCreated, userID, req.Email)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to login")
		return
	}
	if account == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.issueToken(w, http.StatusOK, account.ID, account.Email)
}

// ForgotPassword answers the same way whether or not the email has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resets.Request(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[forgot-password] %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "if the email exists, a code has been sent"})
}

func (h *AuthHandler) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resets.Confirm(r.Context(), req.Email, req.Code, req.Password); err != nil {
		writeServiceError(w, err, "reset password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed, please log in again"})
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, userID, email string) {
	token, err := middleware.GenerateToken(userID, email, h.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, domain.TokenResponse{Token: token, UserID: userID})
}

// decodeCredentials normalizes the email and writes a 400 on bad input.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (domain.TokenRequest, bool) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return req, false
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return req, false
	}
	return req, true
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
