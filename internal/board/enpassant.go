package board

// enPassantTarget returns the square a pawn of color c would land on to
// take the marked pawn en passant, or NoSquare if no such capture exists.
func (b *Board) enPassantTarget(c Color) Square {
	if b.enPassant == NoSquare {
		return NoSquare
	}
	p := b.grid[b.enPassant]
	if p.Kind != Pawn || p.Color == c {
		return NoSquare
	}
	target, ok := b.enPassant.offset(-p.Color.pawnDirection(), 0)
	if !ok || !b.grid[target].IsEmpty() {
		return NoSquare
	}
	return target
}

// EnPassantMoves returns the en passant captures available to c. Only the
// ply directly after the opponent's two-square advance can produce any.
func (b *Board) EnPassantMoves(c Color) []Move {
	target := b.enPassantTarget(c)
	if target == NoSquare {
		return nil
	}

	var moves []Move
	for _, dc := range [2]int{-1, 1} {
		sq, ok := b.enPassant.offset(0, dc)
		if !ok {
			continue
		}
		if p := b.grid[sq]; p.Kind == Pawn && p.Color == c {
			moves = append(moves, NewEnPassant(sq, target, b.enPassant))
		}
	}
	return moves
}

// IsEnPassantAvailable returns true if some pawn of c can capture en passant.
func (b *Board) IsEnPassantAvailable(c Color) bool {
	return len(b.EnPassantMoves(c)) > 0
}
