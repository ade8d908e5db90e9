package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stonkbot/internal/board"
	"stonkbot/internal/config"
	"stonkbot/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the leaderboard files over HTTP, read-only. The Discord
// bot stays the writer of the snapshot directory; this API only looks.
type Server struct {
	cfg   config.APIConfig
	log   *slog.Logger
	store *store.Store
	mux   *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, st *store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		store: st,
		mux:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/users/{username}", s.handleUser)
		r.Get("/summary/daily", s.handleDailySummary)
	})
}

type holdingView struct {
	Symbol     string `json:"symbol"`
	Quantity   string `json:"quantity"`
	ValueLabel string `json:"value_label"`
}

type leaderboardRow struct {
	Rank     int           `json:"rank"`
	Username string        `json:"username"`
	Balance  float64       `json:"balance"`
	Holdings []holdingView `json:"holdings"`
}

type userView struct {
	Username    string        `json:"username"`
	Balance     float64       `json:"balance"`
	ProfileLink string        `json:"profile_link"`
	Holdings    []holdingView `json:"holdings"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		count = v
	}

	snap, err := s.store.ReadLatest()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	entries := board.TopN(snap, count)
	rows := make([]leaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, leaderboardRow{
			Rank:     i + 1,
			Username: e.Username,
			Balance:  e.Record.Balance,
			Holdings: holdingViews(e.Record.Holdings),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	snap, err := s.store.ReadLatest()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	rec, ok := snap.User(username)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found: "+username)
		return
	}
	writeJSON(w, http.StatusOK, userView{
		Username:    username,
		Balance:     rec.Balance,
		ProfileLink: rec.ProfileLink,
		Holdings:    holdingViews(rec.Holdings),
	})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	morning, err := s.store.ReadMorning()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	latest, err := s.store.ReadLatest()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	summary, err := board.CompareDay(morning, latest)
	if err != nil {
		if errors.Is(err, board.ErrZeroBaseline) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, board.ErrMalformed):
		// The refresher handed us a bad file; this side is only the gateway.
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.log.Error("store read failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func holdingViews(holdings []board.Holding) []holdingView {
	out := make([]holdingView, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, holdingView{Symbol: h.Symbol, Quantity: h.Quantity, ValueLabel: h.ValueLabel})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
