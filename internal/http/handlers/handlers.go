package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/poller"
)

// LatestStore is the read side of the latest-notification store.
type LatestStore interface {
	Latest(league games.League) (games.Notification, bool)
}

// Handler serves the read API over the latest published notifications.
type Handler struct {
	store    LatestStore
	leagues  []games.League
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler for the configured leagues.
func NewHandler(store LatestStore, leagues []games.League, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		store:    store,
		leagues:  append([]games.League(nil), leagues...),
		logger:   logger,
		statusFn: statusFn,
	}
}

// LeagueSummary describes the latest notification for one league.
type LeagueSummary struct {
	League       games.League `json:"league"`
	Count        int          `json:"count"`
	Provider     string       `json:"provider,omitempty"`
	FetchedAtUTC string       `json:"fetchedAtUTC,omitempty"`
	Degraded     bool         `json:"degraded"`
	Date         string       `json:"date,omitempty"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Leagues lists the configured leagues with a summary of their latest notification.
func (h *Handler) Leagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	out := make([]LeagueSummary, 0, len(h.leagues))
	for _, league := range h.leagues {
		summary := LeagueSummary{League: league}
		if n, ok := h.store.Latest(league); ok {
			summary.Count = n.Count
			summary.Provider = n.Provider
			summary.FetchedAtUTC = n.FetchedAtUTC
			summary.Degraded = n.Degraded
			summary.Date = n.Date
		}
		out = append(out, summary)
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"leagues": out}, h.logger)
}

// LeagueGames returns the latest notification for the league in the path. A configured league
// that has not published yet yields an empty notification.
func (h *Handler) LeagueGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	league, err := games.ParseLeague(chi.URLParam(r, "league"))
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "unknown league", h.logger)
		return
	}
	if !h.configured(league) {
		writeError(w, r, nethttp.StatusNotFound, "league not configured", h.logger)
		return
	}

	n, ok := h.store.Latest(league)
	if !ok {
		n = games.NewNotification(league, nil)
	}
	logging.Info(loggerFromContext(r, h.logger), "served league games",
		slog.String(logging.FieldLeague, string(league)),
		slog.String(logging.FieldProvider, n.Provider),
		slog.Int(logging.FieldCount, n.Count),
	)
	writeJSON(w, nethttp.StatusOK, n, h.logger)
}

// NotFound renders unknown routes as JSON errors.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders method mismatches as JSON errors.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) configured(league games.League) bool {
	for _, l := range h.leagues {
		if l == league {
			return true
		}
	}
	return false
}
