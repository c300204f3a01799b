package board

// PieceMoves is a piece together with its generated moves.
type PieceMoves struct {
	Square Square
	Piece  Piece
	MoveSet

	// Moves holds the playable candidates, including injected castling and
	// en passant variants. After RemoveIllegalMoves only legal moves remain.
	Moves []Move
}

// Destinations returns the destination squares of Moves.
func (pm PieceMoves) Destinations() []Square {
	out := make([]Square, len(pm.Moves))
	for i, m := range pm.Moves {
		out[i] = m.To
	}
	return out
}

// MoveTo returns the candidate landing on sq.
func (pm PieceMoves) MoveTo(sq Square) (Move, bool) {
	for _, m := range pm.Moves {
		if m.To == sq {
			return m, true
		}
	}
	return Move{}, false
}

// Enumeration is the result of generating every piece of one color.
type Enumeration struct {
	Color  Color
	Pieces []PieceMoves

	// Defended holds the squares of pieces of Color that another piece of
	// Color protects during this pass.
	Defended SquareSet

	// Threats is the union of all attacked squares.
	Threats SquareSet
}

// Reaching returns the pieces whose reach includes sq.
func (e Enumeration) Reaching(sq Square) []PieceMoves {
	var out []PieceMoves
	for _, pm := range e.Pieces {
		if pm.Reaches(sq) {
			out = append(out, pm)
		}
	}
	return out
}

// King returns the king entry, if present.
func (e Enumeration) King() (PieceMoves, bool) {
	for _, pm := range e.Pieces {
		if pm.Piece.Kind == King {
			return pm, true
		}
	}
	return PieceMoves{}, false
}

// Enumerate scans all 64 squares and generates the moves of every piece of color c.
func (b *Board) Enumerate(c Color) Enumeration {
	e := Enumeration{Color: c}
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.grid[sq]
		if p.IsEmpty() || p.Color != c {
			continue
		}
		ms := Generate(b, sq)
		pm := PieceMoves{Square: sq, Piece: p, MoveSet: ms}
		for _, to := range ms.Destinations() {
			pm.Moves = append(pm.Moves, NewMove(sq, to))
		}
		for _, d := range ms.Defends {
			e.Defended = e.Defended.Add(d)
		}
		for _, ray := range ms.Attacks {
			for _, a := range ray {
				e.Threats = e.Threats.Add(a)
			}
		}
		e.Pieces = append(e.Pieces, pm)
	}
	return e
}

// Candidates returns the pseudo-legal moves of every piece of color c,
// with castling injected into the King and en passant into the Pawns.
func (b *Board) Candidates(c Color) []PieceMoves {
	pieces := b.Enumerate(c).Pieces
	castles := b.CastlingMoves(c)
	passants := b.EnPassantMoves(c)

	for i := range pieces {
		pm := &pieces[i]
		switch pm.Piece.Kind {
		case King:
			pm.Moves = append(pm.Moves, castles...)
		case Pawn:
			for _, m := range passants {
				if m.From == pm.Square {
					pm.Moves = append(pm.Moves, m)
				}
			}
		}
	}
	return pieces
}
