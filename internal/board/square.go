// Package board implements the chess board, per-piece move generation and
// the move execution rules, including castling, en passant and promotion.
package board

import "fmt"

// Square is one of the 64 board squares, indexed row*8+col.
// Row 0 is the Blue back rank (rank 8), row 7 the Red back rank (rank 1).
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square(row*8 + col)
}

// Row returns the row of the square (0-7).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Col returns the column (file) of the square (0-7, where 0=a).
func (sq Square) Col() int {
	return int(sq) & 7
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the coordinate of the square (e.g. "a4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '0'+8-sq.Row())
}

// ParseSquare converts a coordinate such as "a4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	rank := int(s[1]) - '0'

	if col < 0 || col > 7 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(8-rank, col), nil
}

// offset returns the square dr rows and dc columns away, if it is on the board.
func (sq Square) offset(dr, dc int) (Square, bool) {
	r, c := sq.Row()+dr, sq.Col()+dc
	if r < 0 || r > 7 || c < 0 || c > 7 {
		return NoSquare, false
	}
	return NewSquare(r, c), true
}

// Coordinates converts squares to their coordinate strings.
func Coordinates(squares []Square) []string {
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	return out
}
