// Package api serves the score history and best values as read-only JSON.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

// Store is the slice of storage the API reads from.
type Store interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	Run(runID string) (*storage.ScoreEntry, error)
	Get(key string) (string, bool)
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Config wires the server.
type Config struct {
	Games    []registry.GameInfo
	BestKeys map[string]string // game id -> KV key holding its best value
	Logger   *log.Logger
}

// Server handles HTTP requests.
type Server struct {
	store     Store
	games     map[string]registry.GameInfo
	order     []registry.GameInfo
	bestKeys  map[string]string
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(store Store, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:     store,
		games:     make(map[string]registry.GameInfo, len(cfg.Games)),
		order:     cfg.Games,
		bestKeys:  cfg.BestKeys,
		logger:    logger,
		startTime: time.Now(),
	}
	for _, g := range cfg.Games {
		s.games[g.ID] = g
	}
	return s
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Use(s.requireGame)
			r.Get("/", s.handleGameStats)
			r.Get("/scores", s.handleScores)
			r.Get("/best", s.handleBest)
		})
		r.Get("/runs/{runID}", s.handleRun)
	})

	return r
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime_seconds"`
	Games  int     `json:"games"`
}

// GameSummary describes one registered game.
type GameSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GamesResponse is returned by /api/v1/games.
type GamesResponse struct {
	Games []GameSummary `json:"games"`
}

// ScoresResponse is returned by /api/v1/games/{id}/scores.
type ScoresResponse struct {
	GameID string               `json:"game_id"`
	Order  string               `json:"order"`
	Scores []storage.ScoreEntry `json:"scores"`
}

// BestResponse is returned by /api/v1/games/{id}/best. Value holds the raw
// stored record: a number for the arcade games, an object for blackjack.
type BestResponse struct {
	GameID string          `json:"game_id"`
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Seconds(),
		Games:  len(s.order),
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	resp := GamesResponse{Games: make([]GameSummary, 0, len(s.order))}
	for _, g := range s.order {
		resp.Games = append(resp.Games, GameSummary{ID: g.ID, Title: g.Title})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	stats, err := s.store.GetGameStats(id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	order := r.URL.Query().Get("order")
	var (
		scores []storage.ScoreEntry
		err    error
	)
	switch order {
	case "", "top":
		order = "top"
		scores, err = s.store.TopScores(id, limit)
	case "recent":
		scores, err = s.store.RecentScores(id, limit)
	default:
		writeError(w, r, http.StatusBadRequest, "validation_error", "order must be top or recent")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, ScoresResponse{GameID: id, Order: order, Scores: scores})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	key, ok := s.bestKeys[id]
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", "game keeps no best value")
		return
	}
	raw, ok := s.store.Get(key)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", "no best recorded yet")
		return
	}
	value := json.RawMessage(raw)
	if !json.Valid(value) {
		quoted, _ := json.Marshal(raw)
		value = quoted
	}
	writeJSON(w, http.StatusOK, BestResponse{GameID: id, Key: key, Value: value})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Run(chi.URLParam(r, "runID"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if run == nil {
		writeError(w, r, http.StatusNotFound, "not_found", "unknown run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// requireGame rejects ids that are not registered.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.games[chi.URLParam(r, "gameID")]; !ok {
			writeError(w, r, http.StatusNotFound, "not_found", "unknown game")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("request failed", "path", r.URL.Path, "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal_error", "storage unavailable")
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	writeJSON(w, status, ErrorResponse{
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
