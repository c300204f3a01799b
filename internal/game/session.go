// Package game runs a two-player session on top of the rules engine.
package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/endgame"
)

var log = slog.Default().With("package", "game")

// Player is one side of a session.
type Player struct {
	Color board.Color `json:"color"`
	Name  string      `json:"name"`
}

// MoveRequest asks for the piece on From to move to To. Promotion names
// the piece a pawn becomes when it reaches the last row; if empty the
// promotion stays pending until Promote is called.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Report describes what a call to Play or Promote did.
type Report struct {
	Mover     board.Color    `json:"mover"`
	Move      string         `json:"move"`
	Kind      string         `json:"kind"`
	Captured  *board.Capture `json:"captured,omitempty"`
	Promotion string         `json:"promotion,omitempty"`

	PromotionPending bool `json:"promotion_pending"`

	// Turn and Status describe the side to move after the report.
	Turn   board.Color    `json:"turn"`
	Status endgame.Status `json:"status"`
}

// Session is a game between Red and Blue. Red moves first.
// A Session is not safe for concurrent use.
type Session struct {
	board   *board.Board
	eval    *endgame.Evaluator
	players [2]Player
	turn    board.Color
	pending bool
	status  endgame.Status
	last    board.Move
}

// NewSession creates a session in the starting position.
func NewSession() *Session {
	return newSession(board.NewStandard(), board.Red)
}

// FromFEN creates a session from a FEN position.
func FromFEN(fen string) (*Session, error) {
	b, toMove, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s := newSession(b, toMove)
	s.status = s.eval.Status(toMove)
	return s, nil
}

func newSession(b *board.Board, toMove board.Color) *Session {
	return &Session{
		board: b,
		eval:  endgame.New(b),
		players: [2]Player{
			{Color: board.Red, Name: "Red"},
			{Color: board.Blue, Name: "Blue"},
		},
		turn:   toMove,
		status: endgame.InPlay,
		last:   board.NewMove(board.NoSquare, board.NoSquare),
	}
}

// Board returns the live board. Callers must treat it as read only.
func (s *Session) Board() *board.Board { return s.board }

// Players returns Red and Blue, in that order.
func (s *Session) Players() [2]Player { return s.players }

// Turn returns the color to move.
func (s *Session) Turn() board.Color { return s.turn }

// Status returns the status of the side to move.
func (s *Session) Status() endgame.Status { return s.status }

// PromotionPending returns true while the side to move owes a promotion choice.
func (s *Session) PromotionPending() bool { return s.pending }

// FEN returns the current position.
func (s *Session) FEN() string { return s.board.FEN(s.turn) }

// Winner returns the color that delivered checkmate.
func (s *Session) Winner() (board.Color, bool) {
	if s.status != endgame.Checkmate {
		return board.Red, false
	}
	return s.turn.Other(), true
}

// MovablePieces returns the sorted coordinates of the pieces of the side
// to move that have at least one legal move.
func (s *Session) MovablePieces() []string {
	if s.pending || s.status.IsOver() {
		return nil
	}
	var out []string
	for _, pm := range s.eval.LegalMoves(s.turn) {
		if len(pm.Moves) > 0 {
			out = append(out, pm.Square.String())
		}
	}
	sort.Strings(out)
	return out
}

// LegalDestinations returns the sorted legal destinations of the piece on coord.
func (s *Session) LegalDestinations(coord string) ([]string, error) {
	from, err := board.ParseSquare(coord)
	if err != nil {
		return nil, err
	}
	p := s.board.PieceAt(from)
	if p.IsEmpty() || p.Color != s.turn {
		return nil, fmt.Errorf("%w: no %s piece on %s", board.ErrIllegalMove, s.turn, from)
	}

	for _, pm := range s.eval.LegalMoves(s.turn) {
		if pm.Square != from {
			continue
		}
		if len(pm.Moves) == 0 {
			break
		}
		out := board.Coordinates(pm.Destinations())
		sort.Strings(out)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s on %s cannot move", board.ErrIllegalMove, p.Kind, from)
}

// Play applies req for the side to move.
func (s *Session) Play(req MoveRequest) (Report, error) {
	if s.status.IsOver() {
		return Report{}, ErrGameOver
	}
	if s.pending {
		return Report{}, ErrPromotionPending
	}

	from, err := board.ParseSquare(req.From)
	if err != nil {
		return Report{}, err
	}
	to, err := board.ParseSquare(req.To)
	if err != nil {
		return Report{}, err
	}
	promotion := board.NoKind
	if req.Promotion != "" {
		if promotion, err = parsePromotion(req.Promotion); err != nil {
			return Report{}, err
		}
	}

	m, ok := board.FindMove(s.eval.LegalMoves(s.turn), from, to)
	if !ok {
		return Report{}, fmt.Errorf("%w: %s%s", board.ErrIllegalMove, from, to)
	}

	promotes := s.board.PieceAt(from).Kind == board.Pawn && board.IsPromotionSquare(to, s.turn)
	if promotion != board.NoKind {
		if !promotes {
			return Report{}, fmt.Errorf("%w: %s%s does not promote", board.ErrIllegalMove, from, to)
		}
		m = m.WithPromotion(promotion)
	}

	before := len(s.board.Captured())
	s.board.Apply(m)
	s.last = m

	r := Report{Mover: s.turn, Move: m.String(), Kind: m.Kind.String()}
	if ledger := s.board.Captured(); len(ledger) > before {
		r.Captured = &ledger[len(ledger)-1]
	}
	if m.Kind == board.Promotion {
		r.Promotion = m.PromoteTo.String()
	}

	if s.board.PromotionAvailable(s.turn) {
		s.pending = true
		r.PromotionPending = true
		r.Turn, r.Status = s.turn, s.status
		log.Debug("promotion pending", "color", s.turn, "square", to)
		return r, nil
	}

	s.finishTurn(&r)
	return r, nil
}

// Promote resolves a pending promotion of the side to move.
func (s *Session) Promote(kind board.PieceKind) (Report, error) {
	if !s.pending {
		return Report{}, fmt.Errorf("%w: %s", board.ErrPromotionUnavailable, s.turn)
	}
	sq, err := s.board.ApplyPromotion(s.turn, kind)
	if err != nil {
		return Report{}, err
	}
	s.pending = false
	log.Debug("promoted", "color", s.turn, "square", sq, "kind", kind)

	m := s.last.WithPromotion(kind)
	s.last = m
	r := Report{Mover: s.turn, Move: m.String(), Kind: m.Kind.String(), Promotion: kind.String()}
	s.finishTurn(&r)
	return r, nil
}

// finishTurn hands the move to the opponent and evaluates their position.
func (s *Session) finishTurn(r *Report) {
	s.turn = s.turn.Other()
	s.status = s.eval.Status(s.turn)
	r.Turn, r.Status = s.turn, s.status

	if s.status.IsOver() {
		log.Debug("game over", "status", s.status, "loser", s.turn)
	}
}

func parsePromotion(name string) (board.PieceKind, error) {
	kind, err := board.ParsePieceKind(name)
	if err != nil || !board.IsPromotionKind(kind) {
		return board.NoKind, fmt.Errorf("%w: cannot promote to %q", board.ErrIllegalMove, name)
	}
	return kind, nil
}

type snapshot struct {
	Board    *board.Board   `json:"board"`
	Players  [2]Player      `json:"players"`
	Turn     board.Color    `json:"turn"`
	Pending  bool           `json:"promotion_pending"`
	Status   endgame.Status `json:"status"`
	LastMove *lastMove      `json:"last_move,omitempty"`
}

type lastMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MarshalJSON encodes everything needed to resume the session.
func (s *Session) MarshalJSON() ([]byte, error) {
	snap := snapshot{
		Board:   s.board,
		Players: s.players,
		Turn:    s.turn,
		Pending: s.pending,
		Status:  s.status,
	}
	if s.last.From.IsValid() {
		snap.LastMove = &lastMove{From: s.last.From.String(), To: s.last.To.String()}
	}
	return json.Marshal(snap)
}

// Restore rebuilds a session from the output of MarshalJSON.
func Restore(data []byte) (*Session, error) {
	snap := snapshot{Board: board.New()}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if snap.Pending && !snap.Board.PromotionAvailable(snap.Turn) {
		return nil, fmt.Errorf("restore session: %w", board.ErrPromotionUnavailable)
	}

	s := newSession(snap.Board, snap.Turn)
	s.players = snap.Players
	s.pending = snap.Pending
	s.status = snap.Status
	if snap.LastMove != nil {
		from, to, err := board.ParseMove(snap.LastMove.From + snap.LastMove.To)
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		s.last = board.NewMove(from, to)
	}
	return s, nil
}
