package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/handler"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/middleware"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/store"
	ws "github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/websocket"
)

type Server struct {
	db       *sql.DB
	hub      *ws.Hub
	eventH   *handler.EventHandler
	suggestH *handler.SuggestHandler
	logger   *slog.Logger
}

// New wires the stores and handlers together. provider may be nil when
// no AI backend is configured; the suggestion endpoint then reports
// itself unavailable instead of failing requests downstream.
func New(db *sql.DB, provider handler.SuggestionProvider, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	eventStore := store.NewEventStore(db)

	return &Server{
		db:       db,
		hub:      hub,
		eventH:   handler.NewEventHandler(eventStore, hub, logger.With("component", "events")),
		suggestH: handler.NewSuggestHandler(eventStore, provider, logger.With("component", "suggest")),
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)

	mux.HandleFunc("POST /api/ai/suggest-schedule", s.suggestH.SuggestSchedule)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
