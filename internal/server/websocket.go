package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// wsHandler subscribes the connection to state updates of one game. The
// current state is sent straight away; after that one message follows
// every applied move or promotion.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g, err := s.lookup(id)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "game", id, "err", err)
		return
	}
	log.Info("websocket connected", "game", id, "remote", conn.RemoteAddr())

	g.mu.Lock()
	g.clients[conn] = struct{}{}
	err = conn.WriteJSON(newState(id, g.session))
	g.mu.Unlock()
	if err != nil {
		s.unsubscribe(id, g, conn)
		return
	}

	// Clients only listen; reading detects the close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.unsubscribe(id, g, conn)
				return
			}
		}
	}()
}

func (s *Server) unsubscribe(id string, g *liveGame, conn *websocket.Conn) {
	g.mu.Lock()
	delete(g.clients, conn)
	g.mu.Unlock()
	conn.Close()
	log.Info("websocket disconnected", "game", id)
}

// broadcast sends the state of g to every subscriber. g.mu must be held.
func (g *liveGame) broadcast(st State) {
	for conn := range g.clients {
		if err := conn.WriteJSON(st); err != nil {
			log.Warn("websocket write failed", "game", st.ID, "err", err)
			delete(g.clients, conn)
			conn.Close()
		}
	}
}
