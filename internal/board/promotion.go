package board

import "fmt"

// PromotionKinds lists the kinds a pawn may be promoted to.
var PromotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// IsPromotionKind returns true if a pawn may become k.
func IsPromotionKind(k PieceKind) bool {
	for _, pk := range PromotionKinds {
		if pk == k {
			return true
		}
	}
	return false
}

// FindPromotablePawn returns the square of a pawn of c standing on the
// opponent's back rank.
func (b *Board) FindPromotablePawn(c Color) (Square, bool) {
	row := c.Other().backRank()
	for col := 0; col < 8; col++ {
		sq := NewSquare(row, col)
		if p := b.grid[sq]; p.Kind == Pawn && p.Color == c {
			return sq, true
		}
	}
	return NoSquare, false
}

// PromotionAvailable returns true if a pawn of c awaits promotion.
func (b *Board) PromotionAvailable(c Color) bool {
	_, ok := b.FindPromotablePawn(c)
	return ok
}

// ApplyPromotion replaces the promotable pawn of c with a new piece of kind.
func (b *Board) ApplyPromotion(c Color, kind PieceKind) (Square, error) {
	if !IsPromotionKind(kind) {
		return NoSquare, fmt.Errorf("%w: cannot promote to %s", ErrIllegalMove, kind)
	}
	sq, ok := b.FindPromotablePawn(c)
	if !ok {
		return NoSquare, fmt.Errorf("%w: %s has no pawn on the last rank", ErrPromotionUnavailable, c)
	}
	b.grid[sq] = promoted(kind, c)
	return sq, nil
}

// promoted creates the piece that replaces a pawn. It never counts as
// unmoved, so a promoted Rook cannot castle.
func promoted(kind PieceKind, c Color) Piece {
	p := NewPiece(kind, c)
	p.Moves = 1
	return p
}
