// Package endgame decides check, checkmate and stalemate for a board.
package endgame

import (
	"github.com/hailam/chessrules/internal/board"
)

// Evaluator analyses whichever board it currently targets. Every query is
// computed from scratch against that board; nothing is cached between calls.
type Evaluator struct {
	board *board.Board
}

var _ board.CheckDetector = (*Evaluator)(nil)

// New creates an evaluator targeting b.
func New(b *board.Board) *Evaluator {
	return &Evaluator{board: b}
}

// Target returns the board under analysis.
func (e *Evaluator) Target() *board.Board {
	return e.board
}

// Retarget points the evaluator at b.
func (e *Evaluator) Retarget(b *board.Board) {
	e.board = b
}

// FindPlayerPieces generates the moves of every piece of color c.
func (e *Evaluator) FindPlayerPieces(c board.Color) board.Enumeration {
	return e.board.Enumerate(c)
}

// LegalMoves returns every piece of c with its moves reduced to legal ones.
func (e *Evaluator) LegalMoves(c board.Color) []board.PieceMoves {
	b := e.board
	return b.RemoveIllegalMoves(c, e, b.Candidates(c))
}

// KingInCheck returns true if an opponent piece can move onto c's king.
// A board without a king of color c is never in check.
func (e *Evaluator) KingInCheck(c board.Color) bool {
	return len(e.CheckingPieces(c)) > 0
}

// CheckingPieces returns the opponent pieces attacking c's king. Two or
// more entries mean double check.
func (e *Evaluator) CheckingPieces(c board.Color) []board.PieceMoves {
	king, err := e.board.FindKing(c)
	if err != nil {
		return nil
	}
	return e.board.Enumerate(c.Other()).Reaching(king)
}

// KingHasSafeMove returns true if c's king can step to a square that is
// neither attacked nor occupied by a defended opponent piece.
func (e *Evaluator) KingHasSafeMove(c board.Color) bool {
	return len(e.SafeKingSquares(c)) > 0
}

// SafeKingSquares returns the squares counted by KingHasSafeMove.
func (e *Evaluator) SafeKingSquares(c board.Color) []board.Square {
	king, ok := e.board.Enumerate(c).King()
	if !ok {
		return nil
	}
	opponent := e.board.Enumerate(c.Other())

	var safe []board.Square
	for _, sq := range king.MoveSet.Destinations() {
		if opponent.Defended.Has(sq) || opponent.Threats.Has(sq) {
			continue
		}
		safe = append(safe, sq)
	}
	return safe
}

// CheckingPieceCapturable returns true if the check on c's king can be
// ended by taking a checker.
//
// With a single checker any legal move onto its square counts, and so does
// an en passant capture removing a checking pawn. With two or more checkers
// only the King itself can help, and only when the legality filter accepts
// the capture, i.e. the remaining checker does not cover the destination.
func (e *Evaluator) CheckingPieceCapturable(c board.Color) bool {
	checkers := e.CheckingPieces(c)
	if len(checkers) == 0 {
		return false
	}

	targets := board.NewSquareSet()
	for _, pm := range checkers {
		targets = targets.Add(pm.Square)
	}

	for _, pm := range e.LegalMoves(c) {
		if len(checkers) > 1 && pm.Piece.Kind != board.King {
			continue
		}
		for _, m := range pm.Moves {
			if targets.Has(m.To) || (m.Kind == board.EnPassant && targets.Has(m.Captured)) {
				return true
			}
		}
	}
	return false
}

// InterceptionSquares returns the squares strictly between a single
// sliding checker and c's king. Contact checks and double checks have none.
func (e *Evaluator) InterceptionSquares(c board.Color) []board.Square {
	checkers := e.CheckingPieces(c)
	if len(checkers) != 1 || !checkers[0].Piece.Kind.IsSlider() {
		return nil
	}
	king, err := e.board.FindKing(c)
	if err != nil {
		return nil
	}

	ray := checkers[0].RayTo(king)
	var between []board.Square
	for _, sq := range ray {
		if sq == king {
			break
		}
		between = append(between, sq)
	}
	return between
}

// InterceptionAvailable returns true if a legal move of a piece other than
// the King lands on an interception square.
func (e *Evaluator) InterceptionAvailable(c board.Color) bool {
	squares := board.NewSquareSet(e.InterceptionSquares(c)...)
	if squares == 0 {
		return false
	}
	for _, pm := range e.LegalMoves(c) {
		if pm.Piece.Kind == board.King {
			continue
		}
		for _, m := range pm.Moves {
			if squares.Has(m.To) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate returns true if c is in check and can neither escape,
// capture the checker nor block the check. The last word goes to the
// legality filter: any legal move at all means the check can be answered.
func (e *Evaluator) IsCheckmate(c board.Color) bool {
	return e.KingInCheck(c) &&
		!e.KingHasSafeMove(c) &&
		!e.CheckingPieceCapturable(c) &&
		!e.InterceptionAvailable(c) &&
		!hasMoves(e.LegalMoves(c))
}

// IsStalemate returns true if c is not in check and has no legal move.
func (e *Evaluator) IsStalemate(c board.Color) bool {
	return !e.KingInCheck(c) &&
		!e.KingHasSafeMove(c) &&
		!e.CheckingPieceCapturable(c) &&
		!e.InterceptionAvailable(c) &&
		!hasMoves(e.LegalMoves(c))
}

func hasMoves(pieces []board.PieceMoves) bool {
	for _, pm := range pieces {
		if len(pm.Moves) > 0 {
			return true
		}
	}
	return false
}
