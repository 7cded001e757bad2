package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/internal/usecase"
	"arrivals-board/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// journalPageSize caps the recent-notifications listing.
const journalPageSize = 50

// Handler serves the arrivals board to external consumers: the board
// snapshot, the manual refresh action, and the notification journal.
type Handler struct {
	board   *usecase.BoardSync
	journal repository.NotificationJournalRepository
	logger  logger.Logger
}

// NewHandler creates a new API handler. The journal may be nil.
func NewHandler(board *usecase.BoardSync, journal repository.NotificationJournalRepository, logger logger.Logger) *Handler {
	return &Handler{
		board:   board,
		journal: journal,
		logger:  logger,
	}
}

// NewRouter wires all routes
func NewRouter(h *Handler, refreshLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/board", h.GetBoard)
		r.With(refreshLimiter.Middleware).Post("/refresh", h.Refresh)
		r.Get("/notifications", h.GetNotifications)
	})

	return r
}

// GetBoard returns the current board snapshot. With ?day=today|tomorrow
// only that slot is returned, still alongside the loading/error flags.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board := h.board.Snapshot()

	switch r.URL.Query().Get("day") {
	case "":
		writeJSON(w, http.StatusOK, board)
	case "today":
		writeJSON(w, http.StatusOK, daySlotResponse{
			Date:    board.Today.Date,
			Flights: board.Today.Flights,
			Loading: board.Loading,
			Error:   board.Error,
		})
	case "tomorrow":
		writeJSON(w, http.StatusOK, daySlotResponse{
			Date:    board.Tomorrow.Date,
			Flights: board.Tomorrow.Flights,
			Loading: board.Loading,
			Error:   board.Error,
		})
	default:
		writeError(w, http.StatusBadRequest, "day must be today or tomorrow")
	}
}

// Refresh triggers one sync cycle in the background, independent of the
// timer's phase, and returns immediately.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Manual refresh requested", "remote", r.RemoteAddr)

	// The cycle must outlive the request; there is no cancellation of an
	// in-flight fetch.
	go h.board.TriggerSync(context.Background())

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

// GetNotifications lists recently dispatched delay notifications from the
// journal. Without a configured journal the list is empty.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeJSON(w, http.StatusOK, []entity.NotificationRecord{})
		return
	}

	records, err := h.journal.FindRecent(r.Context(), journalPageSize)
	if err != nil {
		h.logger.Error("Failed to read notification journal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read journal")
		return
	}
	if records == nil {
		records = []entity.NotificationRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

type daySlotResponse struct {
	Date    string          `json:"date"`
	Flights []entity.Flight `json:"flights"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
