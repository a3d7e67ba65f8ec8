package handler

import (
	"net/http"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/service"
)

// BetHandler handles bet placement and listing.
type BetHandler struct {
	svc *service.BetService
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(svc *service.BetService) *BetHandler {
	return &BetHandler{svc: svc}
}

// PlaceBet handles POST /bets.
func (h *BetHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	if userID == "" {
		RespondError(w, domain.ErrUnauthorized("missing user identity"))
		return
	}

	var input service.PlaceBetInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	bet, err := h.svc.PlaceBet(r.Context(), userID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, bet)
}

// MyBets handles GET /bets/me.
func (h *BetHandler) MyBets(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	if userID == "" {
		RespondError(w, domain.ErrUnauthorized("missing user identity"))
		return
	}

	bets, err := h.svc.ListUserBets(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bets)
}
