package http

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/service"
	"github.com/lockboxd/lockbox/internal/utils"
	"github.com/lockboxd/lockbox/models"
)

// uploadBodyLimit caps the raw upload body slightly above the service-side
// icon limit so oversized uploads are rejected with a clear error instead of
// a truncated read.
const uploadBodyLimit = 2 << 20

func (h *Handler) suggestIcons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	candidates, err := h.services.IconService.SuggestIcons(ctx, r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, candidates, http.StatusOK)
}

func (h *Handler) importIcon(w http.ResponseWriter, r *http.Request) {
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

	var req models.ImportIconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.IconService.ImportIcon(ctx, userID, itemID, req.URL)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) uploadIcon(w http.ResponseWriter, r *http.Request) {
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

	data, contentType, err := readIconUpload(r)
	if err != nil {
		log.Err(err).Msg("reading upload body failed")
		utils.WriteJSONError(w, "reading upload body failed", http.StatusBadRequest)
		return
	}

	item, err := h.services.IconService.UploadIcon(ctx, userID, itemID, contentType, data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, item, http.StatusOK)
}

// readIconUpload extracts the icon bytes and their content type from the
// request. A multipart form carries the file in the "icon" field; any other
// request supplies the raw body with its Content-Type header.
func readIconUpload(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("icon")
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, uploadBodyLimit))
		if err != nil {
			return nil, "", err
		}
		return data, header.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, uploadBodyLimit))
	if err != nil {
		return nil, "", err
	}
	return data, r.Header.Get("Content-Type"), nil
}

func (h *Handler) serveIcon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	iconRef := chi.URLParam(r, "iconRef")
	if iconRef == "" {
		utils.WriteJSONError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
		return
	}

	icon, err := h.services.IconService.GetIcon(ctx, userID, iconRef)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", icon.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(icon.Data)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(icon.Data)
}
