package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/secondli/secondli-be/internal/auth"
	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
)

// AuthHandler handles registration, credential auth and agent-profile
// creation for the current account.
type AuthHandler struct {
	store    storage.Store
	sessions *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store storage.Store, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{store: store, sessions: sessions}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	UserType string `json:"userType" validate:"omitempty,oneof=user agent admin"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AgentProfilePayload defines the structure for agent-profile requests.
type AgentProfilePayload struct {
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience" validate:"gte=0"`
	About          string `json:"about"`
	ProfileImage   string `json:"profileImage"`
}

// Register creates a user account and starts a session for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := auth.HashPassword(payload.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	// The store enforces uniqueness atomically; racing registrations get
	// the same 400s as sequential ones.
	user, err := h.store.CreateUser(storage.NewUser{
		Username: payload.Username,
		Password: digest,
		Email:    payload.Email,
		FullName: payload.FullName,
		Phone:    payload.Phone,
		UserType: payload.UserType,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			respondError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, storage.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already exists")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to create user")
			respondError(w, http.StatusInternalServerError, "Could not register user")
		}
		return
	}

	h.sessions.Issue(w, user.ID)
	respondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Same response for unknown user and wrong password.
	user, ok := h.store.GetUserByUsername(payload.Username)
	if !ok || !auth.VerifyPassword(payload.Password, user.Password) {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	h.sessions.Issue(w, user.ID)
	respondJSON(w, http.StatusOK, user)
}

// Logout tears down the session, if any.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CreateAgentProfile creates the agent row for the current user and
// promotes their account type.
func (h *AuthHandler) CreateAgentProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload AgentProfilePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	agent, err := h.store.CreateAgent(storage.NewAgent{
		UserID:         user.ID,
		Specialization: payload.Specialization,
		Experience:     payload.Experience,
		About:          payload.About,
		ProfileImage:   payload.ProfileImage,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAgentExists) {
			respondError(w, http.StatusBadRequest, "You already have an agent profile")
			return
		}
		log.Error().Err(err).Int("user_id", user.ID).Msg("Failed to create agent profile")
		respondError(w, http.StatusInternalServerError, "Could not create agent profile")
		return
	}

	agentType := models.UserTypeAgent
	if _, ok := h.store.UpdateUser(user.ID, storage.UserUpdate{UserType: &agentType}); !ok {
		log.Error().Int("user_id", user.ID).Msg("Failed to promote user to agent")
	}

	respondJSON(w, http.StatusCreated, agent)
}
