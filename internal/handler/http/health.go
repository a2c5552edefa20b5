package http

import (
	"net/http"

	"github.com/lockboxd/lockbox/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	//nolint:errcheck
	utils.WriteJSON(w, h.services.AppInfoService.Health(r.Context()), http.StatusOK)
}
