package board

// CheckDetector answers king-safety questions about whichever board it
// currently targets. The legality filter retargets it at simulated copies.
type CheckDetector interface {
	Target() *Board
	Retarget(b *Board)
	KingInCheck(c Color) bool
}

// RemoveIllegalMoves drops every candidate that would leave c's king in
// check. Each candidate is played on its own copy of the board and the
// detector is pointed at that copy while it is judged. The detector's
// original target is restored on every exit path.
//
// The given slice is not modified; filtered copies are returned.
func (b *Board) RemoveIllegalMoves(c Color, det CheckDetector, pieces []PieceMoves) []PieceMoves {
	live := det.Target()
	defer det.Retarget(live)

	out := make([]PieceMoves, len(pieces))
	for i, pm := range pieces {
		legal := make([]Move, 0, len(pm.Moves))
		for _, m := range pm.Moves {
			sim := b.Copy()
			sim.Apply(m)
			det.Retarget(sim)
			if !det.KingInCheck(c) {
				legal = append(legal, m)
			}
		}
		pm.Moves = legal
		out[i] = pm
	}
	return out
}

// FindMove returns the move of the piece on from that lands on to.
func FindMove(pieces []PieceMoves, from, to Square) (Move, bool) {
	for _, pm := range pieces {
		if pm.Square == from {
			return pm.MoveTo(to)
		}
	}
	return Move{}, false
}
