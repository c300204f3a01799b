package board

import (
	"fmt"
	"strings"
)

// Color represents the side a piece or player belongs to.
type Color uint8

const (
	Blue Color = iota
	Red
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// ParseColor parses "blue" or "red" (case insensitive).
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	}
	return Blue, fmt.Errorf("invalid color: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// backRank returns the row holding the color's pieces at setup.
func (c Color) backRank() int {
	if c == Blue {
		return 0
	}
	return 7
}

// pawnDirection returns the row delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == Blue {
		return 1
	}
	return -1
}

// pawnRank returns the row pawns of this color start on.
func (c Color) pawnRank() int {
	if c == Blue {
		return 1
	}
	return 6
}

// PieceKind identifies the movement rules of a piece.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// String returns the piece kind name.
func (k PieceKind) String() string {
	if int(k) >= len(kindNames) {
		return "None"
	}
	return kindNames[k]
}

// ParsePieceKind parses a kind name such as "queen" (case insensitive).
func ParsePieceKind(s string) (PieceKind, error) {
	for k := Pawn; k <= King; k++ {
		if strings.EqualFold(s, kindNames[k]) {
			return k, nil
		}
	}
	return NoKind, fmt.Errorf("invalid piece kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PieceKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsSlider returns true for pieces that move along rays.
func (k PieceKind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Char returns the FEN character for the kind (lowercase).
func (k PieceKind) Char() byte {
	return " pnbrqk"[k]
}

var symbols = [...]string{" ", "♟", "♞", "♝", "♜", "♛", "♚"}

// Piece is a single piece instance. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind `json:"kind"`
	Color Color     `json:"color"`
	// Moves counts the moves made by this Rook or King; it never resets.
	Moves int `json:"moves"`
}

// NewPiece creates a fresh piece that has never moved.
func NewPiece(k PieceKind, c Color) Piece {
	return Piece{Kind: k, Color: c}
}

// IsEmpty returns true if no piece is present.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Symbol returns the display glyph of the piece.
func (p Piece) Symbol() string {
	return symbols[p.Kind]
}

// String returns the FEN character: uppercase for Red, lowercase for Blue.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	c := p.Kind.Char()
	if p.Color == Red {
		c -= 'a' - 'A'
	}
	return string(c)
}

// pieceFromChar converts a FEN character to a piece.
func pieceFromChar(c byte) (Piece, bool) {
	color := Blue
	lower := c
	if c >= 'A' && c <= 'Z' {
		color = Red
		lower = c + ('a' - 'A')
	}
	for k := Pawn; k <= King; k++ {
		if k.Char() == lower {
			return NewPiece(k, color), true
		}
	}
	return Piece{}, false
}

// Capture is an entry of the captured-pieces ledger.
type Capture struct {
	Color  Color  `json:"color"`
	Symbol string `json:"symbol"`
}
