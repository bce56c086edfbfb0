package handlers

import (
	"net/http"

	"github.com/resqlink/dispatch/internal/api/middleware"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/domain/repositories"
)

// TollHandler handles read access to the toll clearance log
type TollHandler struct {
	tollRepo  repositories.TollNotificationRepository
	authorize providers.AuthorizeFunc
}

// NewTollHandler creates a new toll handler
func NewTollHandler(tollRepo repositories.TollNotificationRepository, authorize providers.AuthorizeFunc) *TollHandler {
	if authorize == nil {
		authorize = providers.DefaultAuthorize
	}
	return &TollHandler{
		tollRepo:  tollRepo,
		authorize: authorize,
	}
}

// ListTolls handles GET /api/tolls
func (h *TollHandler) ListTolls(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if !h.authorize(role, providers.ActionViewTolls) {
		respondWithError(w, http.StatusForbidden, "role does not permit viewing toll notifications")
		return
	}

	tolls, err := h.tollRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list toll notifications")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tolls": tolls,
		"count": len(tolls),
	})
}
