package board

// castlingRookSquares returns where the rook starts and ends for a king
// moving from from to to along its back rank.
func castlingRookSquares(from, to Square) (rookFrom, rookTo Square) {
	row := from.Row()
	if to.Col() > from.Col() {
		return NewSquare(row, 7), NewSquare(row, 5)
	}
	return NewSquare(row, 0), NewSquare(row, 3)
}

// CastlingPair is a king and rook that have never moved, sharing the back rank.
type CastlingPair struct {
	King Square
	Rook Square
}

// FindCastlingPairs returns every unmoved rook on c's back rank paired
// with the unmoved king on the same rank.
func (b *Board) FindCastlingPairs(c Color) []CastlingPair {
	row := c.backRank()
	king := NoSquare
	for col := 0; col < 8; col++ {
		sq := NewSquare(row, col)
		if p := b.grid[sq]; p.Kind == King && p.Color == c && p.Moves == 0 {
			king = sq
		}
	}
	if king == NoSquare {
		return nil
	}

	var pairs []CastlingPair
	for _, col := range [2]int{0, 7} {
		sq := NewSquare(row, col)
		if p := b.grid[sq]; p.Kind == Rook && p.Color == c && p.Moves == 0 {
			pairs = append(pairs, CastlingPair{King: king, Rook: sq})
		}
	}
	return pairs
}

// CanCastle reports whether the pair may castle now. The squares between
// king and rook must be empty, the king must not be in check, and no
// square the king crosses, destination included, may be attacked.
func (b *Board) CanCastle(c Color, pair CastlingPair) bool {
	return b.canCastle(pair, b.Enumerate(c.Other()).Threats)
}

func (b *Board) canCastle(pair CastlingPair, threats SquareSet) bool {
	row := pair.King.Row()
	lo, hi := pair.King.Col(), pair.Rook.Col()
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo + 1; col < hi; col++ {
		if !b.grid[NewSquare(row, col)].IsEmpty() {
			return false
		}
	}

	dest := castlingKingDestination(pair)
	step := 1
	if dest.Col() < pair.King.Col() {
		step = -1
	}
	for col := pair.King.Col(); ; col += step {
		if threats.Has(NewSquare(row, col)) {
			return false
		}
		if col == dest.Col() {
			break
		}
	}
	return true
}

func castlingKingDestination(pair CastlingPair) Square {
	if pair.Rook.Col() > pair.King.Col() {
		return NewSquare(pair.King.Row(), 6)
	}
	return NewSquare(pair.King.Row(), 2)
}

// CastlingMoves returns the castling moves available to c.
func (b *Board) CastlingMoves(c Color) []Move {
	pairs := b.FindCastlingPairs(c)
	if len(pairs) == 0 {
		return nil
	}
	threats := b.Enumerate(c.Other()).Threats

	var moves []Move
	for _, pair := range pairs {
		if !b.canCastle(pair, threats) {
			continue
		}
		to := castlingKingDestination(pair)
		rookFrom, rookTo := castlingRookSquares(pair.King, to)
		moves = append(moves, NewCastle(pair.King, to, rookFrom, rookTo))
	}
	return moves
}
