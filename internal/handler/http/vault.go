package http

import (
	"encoding/json"
	"net/http"

	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/utils"
	"github.com/lockboxd/lockbox/models"
)

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	filter := models.VaultFilter{
		Category:    query.Get("category"),
		Type:        query.Get("type"),
		TitleSearch: query.Get("search"),
	}

	entries, err := h.services.VaultService.ListEntries(ctx, userID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		utils.WriteJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	entry, err := h.services.VaultService.GetEntry(ctx, userID, itemID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.VaultEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	entry, err := h.services.VaultService.CreateEntry(ctx, userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		utils.WriteJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var req models.VaultEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	entry, err := h.services.VaultService.UpdateEntry(ctx, userID, itemID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		utils.WriteJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.DeleteEntry(ctx, userID, itemID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
