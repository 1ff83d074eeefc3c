package leaderboardhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleHTTPLeaderboard serves GET /api/leaderboard/{window}?page=n.
func (h *LeaderboardHandlers) HandleHTTPLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}

	writeJSON(w, toPagePayload(leaderboardservice.RenderLeaderboardPage(board, page), ""))
}

// HandleHTTPLeaderboardExport serves the whole window as a spreadsheet.
func (h *LeaderboardHandlers) HandleHTTPLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}

	data, err := leaderboardservice.ExportLeaderboardXLSX(board)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Leaderboard export failed", attr.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="wordle-%s.xlsx"`, board.Window))
	_, _ = w.Write(data)
}

// HandleHTTPUserStats serves GET /api/users/{userID}/stats.
func (h *LeaderboardHandlers) HandleHTTPUserStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.loadStats(w, r)
	if !ok {
		return
	}
	writeJSON(w, toStatsPayload(stats, ""))
}

// HandleHTTPUserChart serves the player's guess history as a PNG.
func (h *LeaderboardHandlers) HandleHTTPUserChart(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.loadStats(w, r)
	if !ok {
		return
	}

	png, err := leaderboardservice.RenderGuessChart(stats.Timeline, h.palette)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Chart render failed", attr.UserID(stats.Stats.UserID), attr.Error(err))
		http.Error(w, "chart failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *LeaderboardHandlers) loadBoard(w http.ResponseWriter, r *http.Request) (leaderboardservice.Leaderboard, bool) {
	ctx := r.Context()
	window, err := leaderboarddomain.ParseWindow(chi.URLParam(r, "window"))
	if err != nil {
		http.Error(w, "unknown leaderboard window", http.StatusBadRequest)
		return leaderboardservice.Leaderboard{}, false
	}

	result, err := h.service.GetLeaderboard(ctx, window)
	if err != nil || result.IsFailure() {
		http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
		return leaderboardservice.Leaderboard{}, false
	}
	return *result.Success, true
}

func (h *LeaderboardHandlers) loadStats(w http.ResponseWriter, r *http.Request) (leaderboardservice.UserStats, bool) {
	result, err := h.service.GetUserStats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return leaderboardservice.UserStats{}, false
	}
	if result.IsFailure() {
		status := http.StatusBadRequest
		if errors.Is(*result.Failure, userservice.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, (*result.Failure).Error(), status)
		return leaderboardservice.UserStats{}, false
	}
	return *result.Success, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
