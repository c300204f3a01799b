// Package server exposes game sessions over HTTP and websockets.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

var log = slog.Default().With("package", "server")

// liveGame is a session in memory together with its websocket subscribers.
type liveGame struct {
	mu      sync.Mutex
	session *game.Session
	clients map[*websocket.Conn]struct{}
}

// Server routes HTTP requests to in-memory sessions. Saves and statistics
// go to the storage.
type Server struct {
	router   *mux.Router
	store    *storage.Storage
	upgrader websocket.Upgrader

	gamesLock sync.RWMutex
	games     map[string]*liveGame
	nextID    int
}

// New creates a server backed by store. Access logs are written to
// accessLog unless it is nil.
func New(store *storage.Storage, accessLog io.Writer) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		games: make(map[string]*liveGame),
	}

	if accessLog != nil {
		s.router.Use(func(next http.Handler) http.Handler {
			return handlers.LoggingHandler(accessLog, next)
		})
	}
	s.router.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))

	s.router.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/stats", s.statsHandler).Methods(http.MethodGet)

	s.router.HandleFunc("/games", s.createHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}", s.stateHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves/{square}", s.destinationsHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves", s.moveHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/promotion", s.promotionHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/save", s.saveHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/ws", s.wsHandler)

	s.router.HandleFunc("/saves", s.listSavesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/saves/{name}/load", s.loadHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/saves/{name}", s.deleteSaveHandler).Methods(http.MethodDelete)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) register(session *game.Session) string {
	s.gamesLock.Lock()
	defer s.gamesLock.Unlock()
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.games[id] = &liveGame{session: session, clients: make(map[*websocket.Conn]struct{})}
	return id
}

func (s *Server) lookup(id string) (*liveGame, error) {
	s.gamesLock.RLock()
	defer s.gamesLock.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.LoadStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	session := game.NewSession()
	id := s.register(session)
	log.Info("game created", "game", id)
	writeJSON(w, http.StatusCreated, newState(id, session))
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g, err := s.lookup(id)
	if err != nil {
		writeError(w, err)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	writeJSON(w, http.StatusOK, newState(id, g.session))
}

func (s *Server) destinationsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	g, err := s.lookup(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	g.mu.Lock()
	dests, err := g.session.LegalDestinations(vars["square"])
	g.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"square": vars["square"], "destinations": dests})
}

type playResponse struct {
	Report game.Report `json:"report"`
	State  State       `json:"state"`
}

func (s *Server) moveHandler(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.apply(w, mux.Vars(r)["id"], func(session *game.Session) (game.Report, error) {
		return session.Play(req)
	})
}

func (s *Server) promotionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Piece string `json:"piece"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	kind, err := board.ParsePieceKind(req.Piece)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", board.ErrIllegalMove, err))
		return
	}
	s.apply(w, mux.Vars(r)["id"], func(session *game.Session) (game.Report, error) {
		return session.Promote(kind)
	})
}

// apply runs op on the session, pushes the new state to subscribers and
// records the result once the game is over.
func (s *Server) apply(w http.ResponseWriter, id string, op func(*game.Session) (game.Report, error)) {
	g, err := s.lookup(id)
	if err != nil {
		writeError(w, err)
		return
	}

	g.mu.Lock()
	report, err := op(g.session)
	if err != nil {
		g.mu.Unlock()
		writeError(w, err)
		return
	}
	st := newState(id, g.session)
	g.broadcast(st)
	g.mu.Unlock()

	if report.Status.IsOver() {
		result := storage.Result{Status: report.Status, Winner: report.Mover}
		if err := s.store.RecordResult(result); err != nil {
			log.Error("record result", "game", id, "err", err)
		}
		log.Info("game finished", "game", id, "status", report.Status, "mover", report.Mover)
	}
	writeJSON(w, http.StatusOK, playResponse{Report: report, State: st})
}

func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := s.lookup(id)
	if err != nil {
		writeError(w, err)
		return
	}

	g.mu.Lock()
	data, err := g.session.MarshalJSON()
	g.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.SaveSession(req.Name, data); err != nil {
		writeError(w, err)
		return
	}
	log.Info("game saved", "game", id, "name", req.Name)
	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

func (s *Server) listSavesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListSessions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"saves": names})
}

func (s *Server) loadHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, err := s.store.LoadSession(name)
	if err != nil {
		writeError(w, err)
		return
	}
	session, err := game.Restore(data)
	if err != nil {
		writeError(w, err)
		return
	}
	id := s.register(session)
	log.Info("game loaded", "game", id, "name", name)
	writeJSON(w, http.StatusCreated, newState(id, session))
}

func (s *Server) deleteSaveHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.store.DeleteSession(name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
