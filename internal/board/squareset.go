package board

import "math/bits"

// SquareSet is a 64-bit set where bit n corresponds to Square(n).
type SquareSet uint64

// NewSquareSet builds a set from the given squares.
func NewSquareSet(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

// Add returns the set with sq added.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | 1<<sq
}

// Has returns true if sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.IsValid() && s&(1<<sq) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares returns the members in ascending index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for s != 0 {
		out = append(out, Square(bits.TrailingZeros64(uint64(s))))
		s &= s - 1
	}
	return out
}
