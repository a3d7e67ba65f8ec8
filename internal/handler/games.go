package handler

import (
	"net/http"

	"github.com/courtside/api/internal/service"
)

const defaultScheduleLimit = 10

// GameHandler handles the public game catalog endpoints.
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// NextGame handles GET /games/next.
func (h *GameHandler) NextGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.svc.NextGame(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, game)
}

// NextSchedule handles GET /games/next-schedule.
func (h *GameHandler) NextSchedule(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.NextSchedule(r.Context(), defaultScheduleLimit)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, games)
}
