package board

// Ray is an ordered run of squares in one direction, nearest first.
type Ray []Square

// MoveSet is the result of one generation pass for a single piece.
// It is computed fresh on every query and never cached on the piece.
type MoveSet struct {
	// Reach holds the squares the piece can move to, grouped per direction.
	Reach []Ray
	// Attacks holds the squares the piece threatens for king safety.
	// For a Pawn these are both diagonals whether or not they are occupied.
	Attacks []Ray
	// Defends holds own-color squares protected by the piece.
	Defends []Square
}

// Destinations returns every reachable square in ray order.
func (ms MoveSet) Destinations() []Square {
	var out []Square
	for _, ray := range ms.Reach {
		out = append(out, ray...)
	}
	return out
}

// Reaches returns true if sq is a reachable square.
func (ms MoveSet) Reaches(sq Square) bool {
	return rayIndex(ms.Reach, sq) >= 0
}

// Threatens returns true if sq is an attacked square.
func (ms MoveSet) Threatens(sq Square) bool {
	return rayIndex(ms.Attacks, sq) >= 0
}

// RayTo returns the reach ray containing sq, or nil.
func (ms MoveSet) RayTo(sq Square) Ray {
	for _, ray := range ms.Reach {
		for _, s := range ray {
			if s == sq {
				return ray
			}
		}
	}
	return nil
}

func rayIndex(rays []Ray, sq Square) int {
	for i, ray := range rays {
		for _, s := range ray {
			if s == sq {
				return i
			}
		}
	}
	return -1
}

type offset struct{ dr, dc int }

var (
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, 2}, {-1, -2}, {1, 2}, {1, -2}, {2, 1}, {2, -1}}
	kingOffsets   = []offset{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}}

	rookDirections   = []offset{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	bishopDirections = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	queenDirections  = append(append([]offset{}, rookDirections...), bishopDirections...)
)

// Generate produces the pseudo-legal moves of the piece on from. It ignores
// whether the mover's own king would be left in check. Castling and en
// passant are added by the board, not here.
func Generate(b *Board, from Square) MoveSet {
	p := b.PieceAt(from)
	switch p.Kind {
	case Pawn:
		return generatePawn(b, from, p.Color)
	case Knight:
		return generateSteps(b, from, p.Color, knightOffsets)
	case Bishop:
		return generateRays(b, from, p.Color, bishopDirections)
	case Rook:
		return generateRays(b, from, p.Color, rookDirections)
	case Queen:
		return generateRays(b, from, p.Color, queenDirections)
	case King:
		return generateSteps(b, from, p.Color, kingOffsets)
	}
	return MoveSet{}
}

// generateSteps handles fixed-offset pieces (Knight, King).
func generateSteps(b *Board, from Square, us Color, offsets []offset) MoveSet {
	var ms MoveSet
	for _, o := range offsets {
		sq, ok := from.offset(o.dr, o.dc)
		if !ok {
			continue
		}
		occ := b.PieceAt(sq)
		if !occ.IsEmpty() && occ.Color == us {
			ms.Defends = append(ms.Defends, sq)
			continue
		}
		ms.Reach = append(ms.Reach, Ray{sq})
		ms.Attacks = append(ms.Attacks, Ray{sq})
	}
	return ms
}

// generateRays handles sliding pieces (Bishop, Rook, Queen).
//
// A ray that captures the opposing King keeps attacking the empty squares
// behind it, so the King cannot step back along the line it is checked on.
func generateRays(b *Board, from Square, us Color, directions []offset) MoveSet {
	var ms MoveSet
	for _, d := range directions {
		var reach, attacks Ray
		throughKing := false
		for sq, ok := from.offset(d.dr, d.dc); ok; sq, ok = sq.offset(d.dr, d.dc) {
			occ := b.PieceAt(sq)
			if throughKing {
				if !occ.IsEmpty() {
					break
				}
				attacks = append(attacks, sq)
				continue
			}
			if occ.IsEmpty() {
				reach = append(reach, sq)
				attacks = append(attacks, sq)
				continue
			}
			if occ.Color == us {
				ms.Defends = append(ms.Defends, sq)
				break
			}
			reach = append(reach, sq)
			attacks = append(attacks, sq)
			if occ.Kind != King {
				break
			}
			throughKing = true
		}
		if len(reach) > 0 {
			ms.Reach = append(ms.Reach, reach)
		}
		if len(attacks) > 0 {
			ms.Attacks = append(ms.Attacks, attacks)
		}
	}
	return ms
}

// generatePawn handles forward pushes and diagonal captures.
func generatePawn(b *Board, from Square, us Color) MoveSet {
	var ms MoveSet
	dir := us.pawnDirection()

	var forward Ray
	if one, ok := from.offset(dir, 0); ok && b.PieceAt(one).IsEmpty() {
		forward = append(forward, one)
		if from.Row() == us.pawnRank() {
			if two, ok := from.offset(2*dir, 0); ok && b.PieceAt(two).IsEmpty() {
				forward = append(forward, two)
			}
		}
	}
	if len(forward) > 0 {
		ms.Reach = append(ms.Reach, forward)
	}

	for _, dc := range [2]int{-1, 1} {
		sq, ok := from.offset(dir, dc)
		if !ok {
			continue
		}
		ms.Attacks = append(ms.Attacks, Ray{sq})
		occ := b.PieceAt(sq)
		switch {
		case occ.IsEmpty():
		case occ.Color == us:
			ms.Defends = append(ms.Defends, sq)
		default:
			ms.Reach = append(ms.Reach, Ray{sq})
		}
	}
	return ms
}
