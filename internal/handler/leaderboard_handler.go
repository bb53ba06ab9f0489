package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(s *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: s}
}

// @Summary Ranking H2H
// @Description Victoria 3 puntos, empate 1.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "cantidad (default 10, máx 100)"
// @Success 200 {array} models.LeaderboardEntry
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.svc.Top(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}
