package wordlehandlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/internal/httpserver"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

const maxBodyBytes = 4 << 10

type scrapeRequest struct {
	Since     string `json:"since"`
	ChannelID string `json:"channel_id,omitempty"`
}

type jobResponse struct {
	JobID     int64  `json:"job_id"`
	Duplicate bool   `json:"duplicate"`
	Since     string `json:"since,omitempty"`
	GuildID   string `json:"guild_id,omitempty"`
}

// HandleHTTPScrape serves POST /api/admin/scrape.
func (h *WordleHandlers) HandleHTTPScrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req scrapeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Since == "" {
		req.Since = wordledomain.SinceAll
	}
	if _, err := wordledomain.ParseSince(req.Since, h.now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	queued, err := h.queue.EnqueueScrape(ctx, req.Since, req.ChannelID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to queue scrape", attr.Error(err))
		http.Error(w, queueFailedReason, http.StatusInternalServerError)
		return
	}

	h.logRequester(r, "scrape", queued)
	writeAccepted(w, jobResponse{JobID: queued.JobID, Duplicate: queued.Duplicate, Since: req.Since})
}

// HandleHTTPMemberSync serves POST /api/admin/members/sync.
func (h *WordleHandlers) HandleHTTPMemberSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guildID == "" {
		http.Error(w, "no guild configured", http.StatusConflict)
		return
	}

	queued, err := h.queue.EnqueueMemberSync(ctx, h.guildID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to queue member sync", attr.Error(err))
		http.Error(w, "failed to queue member sync", http.StatusInternalServerError)
		return
	}

	h.logRequester(r, "member_sync", queued)
	writeAccepted(w, jobResponse{JobID: queued.JobID, Duplicate: queued.Duplicate, GuildID: h.guildID})
}

func (h *WordleHandlers) logRequester(r *http.Request, job string, queued wordlequeue.EnqueueResult) {
	subject := ""
	if claims, ok := httpserver.ClaimsFromContext(r.Context()); ok {
		subject = claims.Subject
	}
	h.logger.InfoContext(r.Context(), "Admin job queued",
		attr.String("job", job),
		attr.String("subject", subject),
		attr.Int64("job_id", queued.JobID),
	)
}

func writeAccepted(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(v)
}
