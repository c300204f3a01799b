package server

import (
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/endgame"
	"github.com/hailam/chessrules/internal/game"
)

// State is the view of a session sent to clients.
type State struct {
	ID               string          `json:"id"`
	FEN              string          `json:"fen"`
	Turn             board.Color     `json:"turn"`
	Status           endgame.Status  `json:"status"`
	Winner           *board.Color    `json:"winner,omitempty"`
	PromotionPending bool            `json:"promotion_pending"`
	Board            [8][8]string    `json:"board"`
	Captured         []board.Capture `json:"captured"`
	Movable          []string        `json:"movable"`
}

func newState(id string, s *game.Session) State {
	st := State{
		ID:               id,
		FEN:              s.FEN(),
		Turn:             s.Turn(),
		Status:           s.Status(),
		PromotionPending: s.PromotionPending(),
		Captured:         s.Board().Captured(),
		Movable:          s.MovablePieces(),
	}
	if winner, ok := s.Winner(); ok {
		st.Winner = &winner
	}
	for row, rank := range s.Board().Grid() {
		for col, p := range rank {
			st.Board[row][col] = p.String()
		}
	}
	if st.Captured == nil {
		st.Captured = []board.Capture{}
	}
	if st.Movable == nil {
		st.Movable = []string{}
	}
	return st
}
