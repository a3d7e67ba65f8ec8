package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/service"
	"github.com/courtside/api/internal/settlement"
)

// AdminHandler handles operator endpoints: game refresh, demo seeding,
// settlement, and the demo reset.
type AdminHandler struct {
	games       *service.GameService
	engine      *settlement.Engine
	seedEnabled bool
}

// NewAdminHandler creates a new AdminHandler. seedEnabled gates the demo
// seeding endpoints.
func NewAdminHandler(games *service.GameService, engine *settlement.Engine, seedEnabled bool) *AdminHandler {
	return &AdminHandler{games: games, engine: engine, seedEnabled: seedEnabled}
}

// RefreshGame handles POST /admin/games/refresh.
func (h *AdminHandler) RefreshGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.RefreshNextGame(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, game)
}

// SeedGame handles POST /admin/games/seed.
func (h *AdminHandler) SeedGame(w http.ResponseWriter, r *http.Request) {
	if !h.seedEnabled {
		RespondError(w, domain.ErrForbidden("demo seeding is disabled"))
		return
	}
	game, err := h.games.RefreshNextGame(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, game)
}

// SeedFakeGame handles POST /admin/games/seed-fake.
func (h *AdminHandler) SeedFakeGame(w http.ResponseWriter, r *http.Request) {
	if !h.seedEnabled {
		RespondError(w, domain.ErrForbidden("demo seeding is disabled"))
		return
	}
	game, err := h.games.SeedFakeGame(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, game)
}

// SettleGame handles POST /admin/games/{gameID}/settle.
func (h *AdminHandler) SettleGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		RespondError(w, domain.ErrValidation("gameID is required"))
		return
	}

	var input struct {
		FinalHomeScore *int `json:"finalHomeScore"`
		FinalAwayScore *int `json:"finalAwayScore"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}
	if input.FinalHomeScore == nil || input.FinalAwayScore == nil {
		RespondError(w, domain.ErrValidation("finalHomeScore and finalAwayScore are required"))
		return
	}
	if *input.FinalHomeScore < 0 || *input.FinalAwayScore < 0 {
		RespondError(w, domain.ErrValidation("scores must be non-negative"))
		return
	}

	result, err := h.engine.SettleGame(r.Context(), gameID, *input.FinalHomeScore, *input.FinalAwayScore)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Reset handles POST /admin/reset.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.games.ResetDemoData(r.Context()); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
