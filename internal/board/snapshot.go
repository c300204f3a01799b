package board

import (
	"encoding/json"
	"fmt"
)

type placedJSON struct {
	Square string `json:"square"`
	Piece
}

type boardJSON struct {
	Pieces    []placedJSON `json:"pieces"`
	EnPassant string       `json:"en_passant,omitempty"`
	Captured  []Capture    `json:"captured"`
}

// MarshalJSON encodes the full board state, move counters included.
func (b *Board) MarshalJSON() ([]byte, error) {
	out := boardJSON{Captured: b.Captured()}
	if out.Captured == nil {
		out.Captured = []Capture{}
	}
	for sq := Square(0); sq < NoSquare; sq++ {
		if p := b.grid[sq]; !p.IsEmpty() {
			out.Pieces = append(out.Pieces, placedJSON{Square: sq.String(), Piece: p})
		}
	}
	if sq, ok := b.EnPassantPawn(); ok {
		out.EnPassant = sq.String()
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a board written by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var in boardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	nb := New()
	for _, pj := range in.Pieces {
		sq, err := ParseSquare(pj.Square)
		if err != nil {
			return err
		}
		if pj.Kind == NoKind {
			return fmt.Errorf("empty piece on %s", sq)
		}
		nb.grid[sq] = pj.Piece
	}
	if in.EnPassant != "" {
		sq, err := ParseSquare(in.EnPassant)
		if err != nil {
			return err
		}
		if nb.grid[sq].Kind != Pawn {
			return fmt.Errorf("en passant marker on %s is not a pawn", sq)
		}
		nb.enPassant = sq
	}
	nb.captured = in.Captured

	*b = *nb
	return nil
}
