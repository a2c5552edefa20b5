package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/utils"
	"github.com/lockboxd/lockbox/models"
)

func (h *Handler) registrationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.services.AuthService.RegistrationStatus(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Str("email", user.Email).Msg("first account registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	//nolint:errcheck
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	_, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	//nolint:errcheck
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, req); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recoveryStatus(w http.ResponseWriter, r *http.Request) {
	//nolint:errcheck
	utils.WriteJSON(w, h.services.AuthService.RecoveryStatus(), http.StatusOK)
}

func (h *Handler) recover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RecoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.RecoverPassword(ctx, req); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
