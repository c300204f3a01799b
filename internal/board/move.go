package board

import "fmt"

// MoveKind distinguishes moves whose execution goes beyond relocating one piece.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Castle
	EnPassant
	Promotion
)

func (k MoveKind) String() string {
	switch k {
	case Castle:
		return "castle"
	case EnPassant:
		return "en passant"
	case Promotion:
		return "promotion"
	default:
		return "normal"
	}
}

// Move is a candidate or executed move.
type Move struct {
	From Square
	To   Square
	Kind MoveKind

	// RookFrom and RookTo are set for Castle.
	RookFrom Square
	RookTo   Square

	// Captured is the square of the pawn taken by EnPassant.
	Captured Square

	// PromoteTo is set for Promotion.
	PromoteTo PieceKind
}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Kind: Normal, RookFrom: NoSquare, RookTo: NoSquare, Captured: NoSquare}
}

// NewCastle creates a castling move for the king together with its rook.
func NewCastle(from, to, rookFrom, rookTo Square) Move {
	m := NewMove(from, to)
	m.Kind = Castle
	m.RookFrom, m.RookTo = rookFrom, rookTo
	return m
}

// NewEnPassant creates an en passant capture of the pawn on captured.
func NewEnPassant(from, to, captured Square) Move {
	m := NewMove(from, to)
	m.Kind = EnPassant
	m.Captured = captured
	return m
}

// WithPromotion returns the move turned into a promotion to kind.
func (m Move) WithPromotion(kind PieceKind) Move {
	m.Kind = Promotion
	m.PromoteTo = kind
	return m
}

// String returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Kind == Promotion {
		s += string(m.PromoteTo.Char())
	}
	return s
}

// ParseMove parses a coordinate move such as "e2e4" into its squares.
// The variant is resolved by the board when the move is played.
func ParseMove(s string) (from, to Square, err error) {
	if len(s) != 4 {
		return NoSquare, NoSquare, fmt.Errorf("%w: move %q", ErrInvalidSquare, s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, err
	}
	return from, to, nil
}

// IsPromotionSquare returns true if a pawn of color c on sq has reached the last row.
func IsPromotionSquare(sq Square, c Color) bool {
	return sq.Row() == c.Other().backRank()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
