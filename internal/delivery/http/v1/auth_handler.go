package v1

import (
	"errors"
	"io"
	"net/http"

	"dashboard-client/internal/delivery/http/middleware"
	"dashboard-client/internal/domain"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/utils"

	"github.com/goccy/go-json"
)

const maxJSONBody = 1 << 20

// envelope is the service's response shape.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userId,omitempty"`
}

type AuthHandler struct {
	authUC *usecase.AuthUsecase
}

func NewAuthHandler(authUC *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, account, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, usecase.ErrInvalidLogin) {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	logger.WithContext(r.Context()).Info().Str("user_id", account.ID).Msg("User logged in")
	utils.WriteJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Login successful",
		Data:    map[string]string{"token": token},
		UserID:  account.ID,
	})
}

// UserDetails reads the profile named by the userId query parameter.
func (h *AuthHandler) UserDetails(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}
	h.writeProfile(w, r, id)
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}
	h.updateProfile(w, r, id)
}

// Display is UserDetails for the token's own account.
func (h *AuthHandler) Display(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	h.writeProfile(w, r, id)
}

func (h *AuthHandler) UpdateWithToken(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	h.updateProfile(w, r, id)
}

func (h *AuthHandler) writeProfile(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.authUC.Profile(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: profile})
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request, id string) {
	var profile domain.ProfileRecord
	if err := decodeJSON(r, &profile); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.authUC.UpdateProfile(r.Context(), id, profile)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, envelope{Success: true, Message: "User updated successfully", Data: updated})
}

// --- Helpers ---

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v)
}

// writeUsecaseError maps usecase failures onto the envelope. Rejected input
// is a 200 with success=false, as the real service reports it.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		utils.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrEmailTaken):
		utils.WriteError(w, http.StatusOK, "Email already in use")
	case domain.IsKind(err, domain.KindInvalidField):
		utils.WriteError(w, http.StatusOK, domain.MessageOf(err))
	case domain.IsKind(err, domain.KindInvalidFile):
		utils.WriteError(w, http.StatusBadRequest, domain.MessageOf(err))
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
