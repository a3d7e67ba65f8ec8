package handler

import (
	"net/http"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/service"
)

// PointsHandler handles the points ledger read endpoint.
type PointsHandler struct {
	svc *service.PointsService
}

// NewPointsHandler creates a new PointsHandler.
func NewPointsHandler(svc *service.PointsService) *PointsHandler {
	return &PointsHandler{svc: svc}
}

// MyPoints handles GET /points/me.
func (h *PointsHandler) MyPoints(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	if userID == "" {
		RespondError(w, domain.ErrUnauthorized("missing user identity"))
		return
	}

	total, err := h.svc.TotalPoints(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]int64{"totalPoints": total})
}
