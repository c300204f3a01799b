package board

import (
	"fmt"
	"strings"
)

// Board is the 8x8 grid together with the en passant marker and the
// captured-pieces ledger. The zero value is not usable; call New.
type Board struct {
	grid [64]Piece

	// enPassant is the square of the pawn that advanced two squares on the
	// previous ply, NoSquare otherwise.
	enPassant Square

	captured []Capture
}

// New creates an empty board.
func New() *Board {
	return &Board{enPassant: NoSquare}
}

// NewStandard creates a board in the starting position.
func NewStandard() *Board {
	b := New()
	backRow := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, c := range [2]Color{Blue, Red} {
		for col, k := range backRow {
			b.Place(NewSquare(c.backRank(), col), NewPiece(k, c))
			b.Place(NewSquare(c.pawnRank(), col), NewPiece(Pawn, c))
		}
	}
	return b
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	nb.captured = append([]Capture(nil), b.captured...)
	return &nb
}

// PieceAt returns the piece on sq; the zero Piece if the square is empty.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return Piece{}
	}
	return b.grid[sq]
}

// Place puts p on sq, replacing whatever was there.
func (b *Board) Place(sq Square, p Piece) {
	b.grid[sq] = p
}

// Remove empties sq and returns its previous occupant.
func (b *Board) Remove(sq Square) Piece {
	p := b.grid[sq]
	b.grid[sq] = Piece{}
	return p
}

// Grid returns the board as rows of pieces, row 0 first.
func (b *Board) Grid() [8][8]Piece {
	var g [8][8]Piece
	for sq := Square(0); sq < NoSquare; sq++ {
		g[sq.Row()][sq.Col()] = b.grid[sq]
	}
	return g
}

// Captured returns a copy of the captured-pieces ledger.
func (b *Board) Captured() []Capture {
	return append([]Capture(nil), b.captured...)
}

// EnPassantPawn returns the square of the pawn that can be taken en passant.
func (b *Board) EnPassantPawn() (Square, bool) {
	return b.enPassant, b.enPassant != NoSquare
}

// IsFreeOrCapturable returns true if sq is empty or holds a piece of the other color.
func (b *Board) IsFreeOrCapturable(sq Square, c Color) bool {
	p := b.PieceAt(sq)
	return p.IsEmpty() || p.Color != c
}

// FindKing returns the square of the king of color c.
func (b *Board) FindKing(c Color) (Square, error) {
	for sq := Square(0); sq < NoSquare; sq++ {
		if p := b.grid[sq]; p.Kind == King && p.Color == c {
			return sq, nil
		}
	}
	return NoSquare, fmt.Errorf("%w: %s", ErrNoKingFound, c)
}

// Move plays the piece on from to to. The move variant is derived from
// the geometry: a King moving two columns castles and a Pawn landing on
// the en passant target takes the passed pawn. It does not check legality.
func (b *Board) Move(from, to Square) (Move, error) {
	p := b.PieceAt(from)
	if p.IsEmpty() || !to.IsValid() {
		return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	m := NewMove(from, to)
	switch {
	case p.Kind == King && abs(to.Col()-from.Col()) == 2:
		rookFrom, rookTo := castlingRookSquares(from, to)
		m = NewCastle(from, to, rookFrom, rookTo)
	case p.Kind == Pawn && to == b.enPassantTarget(p.Color) && to.Col() != from.Col():
		m = NewEnPassant(from, to, b.enPassant)
	}

	b.Apply(m)
	return m, nil
}

// Apply executes m. The caller is responsible for m being consistent with
// the board, which holds for every move produced by Candidates.
func (b *Board) Apply(m Move) {
	p := b.Remove(m.From)
	displaced := b.grid[m.To]

	if p.Kind == Rook || p.Kind == King {
		p.Moves++
	}
	b.grid[m.To] = p

	switch m.Kind {
	case Castle:
		rook := b.Remove(m.RookFrom)
		rook.Moves++
		b.grid[m.RookTo] = rook
	case EnPassant:
		b.capture(b.Remove(m.Captured))
	case Promotion:
		b.grid[m.To] = promoted(m.PromoteTo, p.Color)
	}

	if !displaced.IsEmpty() {
		b.capture(displaced)
	}

	if p.Kind == Pawn && abs(m.To.Row()-m.From.Row()) == 2 {
		b.enPassant = m.To
	} else {
		b.enPassant = NoSquare
	}
}

func (b *Board) capture(p Piece) {
	if p.IsEmpty() {
		return
	}
	b.captured = append(b.captured, Capture{Color: p.Color, Symbol: p.Symbol()})
}

// String returns a plain text diagram of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			sb.WriteString(b.grid[NewSquare(row, col)].String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	if sq, ok := b.EnPassantPawn(); ok {
		fmt.Fprintf(&sb, "En passant pawn: %s\n", sq)
	}
	return sb.String()
}
