package board

import (
	"sort"
	"testing"
)

func sq(t *testing.T, s string) Square {
	t.Helper()
	v, err := ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func coords(squares []Square) []string {
	out := Coordinates(squares)
	sort.Strings(out)
	return out
}

func equalCoords(t *testing.T, label string, got []Square, want ...string) {
	t.Helper()
	g := coords(got)
	sort.Strings(want)
	if len(g) != len(want) {
		t.Errorf("%s = %v, want %v", label, g, want)
		return
	}
	for i := range g {
		if g[i] != want[i] {
			t.Errorf("%s = %v, want %v", label, g, want)
			return
		}
	}
}

func TestSliderStopsAtFirstOccupiedSquare(t *testing.T) {
	b := New()
	b.Place(sq(t, "d4"), NewPiece(Rook, Red))
	b.Place(sq(t, "d6"), NewPiece(Pawn, Red))
	b.Place(sq(t, "g4"), NewPiece(Knight, Blue))
	b.Place(sq(t, "d2"), NewPiece(Bishop, Blue))

	ms := Generate(b, sq(t, "d4"))
	equalCoords(t, "rook reach", ms.Destinations(),
		"d5", "e4", "f4", "g4", "c4", "b4", "a4", "d3", "d2")
	equalCoords(t, "rook defends", ms.Defends, "d6")

	ray := ms.RayTo(sq(t, "g4"))
	if len(ray) != 3 || ray[0] != sq(t, "e4") || ray[2] != sq(t, "g4") {
		t.Errorf("ray to g4 = %v, want [e4 f4 g4]", Coordinates(ray))
	}
}

func TestQueenAndBishopRays(t *testing.T) {
	b := New()
	b.Place(sq(t, "a1"), NewPiece(Bishop, Blue))
	b.Place(sq(t, "e5"), NewPiece(Pawn, Red))

	ms := Generate(b, sq(t, "a1"))
	equalCoords(t, "bishop reach", ms.Destinations(), "b2", "c3", "d4", "e5")

	b = New()
	b.Place(sq(t, "d4"), NewPiece(Queen, Red))
	ms = Generate(b, sq(t, "d4"))
	if n := len(ms.Destinations()); n != 27 {
		t.Errorf("queen on empty board reaches %d squares, want 27", n)
	}
	if len(ms.Reach) != 8 {
		t.Errorf("queen rays = %d, want 8", len(ms.Reach))
	}
}

func TestKnightAndKingSteps(t *testing.T) {
	b := New()
	b.Place(sq(t, "a8"), NewPiece(Knight, Blue))
	b.Place(sq(t, "b6"), NewPiece(Pawn, Blue))
	b.Place(sq(t, "c7"), NewPiece(Pawn, Red))

	ms := Generate(b, sq(t, "a8"))
	equalCoords(t, "knight reach", ms.Destinations(), "c7")
	equalCoords(t, "knight defends", ms.Defends, "b6")

	b = New()
	b.Place(sq(t, "e1"), NewPiece(King, Red))
	b.Place(sq(t, "d1"), NewPiece(Queen, Red))
	ms = Generate(b, sq(t, "e1"))
	equalCoords(t, "king reach", ms.Destinations(), "f1", "d2", "e2", "f2")
	equalCoords(t, "king defends", ms.Defends, "d1")
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name    string
		setup   map[string]Piece
		from    string
		reach   []string
		attacks []string
	}{
		{
			name:    "red double step from start",
			setup:   map[string]Piece{"e2": NewPiece(Pawn, Red)},
			from:    "e2",
			reach:   []string{"e3", "e4"},
			attacks: []string{"d3", "f3"},
		},
		{
			name:    "blue double step from start",
			setup:   map[string]Piece{"e7": NewPiece(Pawn, Blue)},
			from:    "e7",
			reach:   []string{"e6", "e5"},
			attacks: []string{"d6", "f6"},
		},
		{
			name: "double step blocked on second square",
			setup: map[string]Piece{
				"e2": NewPiece(Pawn, Red),
				"e4": NewPiece(Knight, Blue),
			},
			from:    "e2",
			reach:   []string{"e3"},
			attacks: []string{"d3", "f3"},
		},
		{
			name: "blocked pawn still threatens diagonals",
			setup: map[string]Piece{
				"a3": NewPiece(Pawn, Red),
				"a4": NewPiece(Pawn, Blue),
			},
			from:    "a3",
			reach:   nil,
			attacks: []string{"b4"},
		},
		{
			name: "diagonal capture of opponent only",
			setup: map[string]Piece{
				"d5": NewPiece(Pawn, Blue),
				"c4": NewPiece(Rook, Red),
				"e4": NewPiece(Rook, Blue),
			},
			from:    "d5",
			reach:   []string{"d4", "c4"},
			attacks: []string{"c4", "e4"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			for s, p := range tc.setup {
				b.Place(sq(t, s), p)
			}
			ms := Generate(b, sq(t, tc.from))
			equalCoords(t, "reach", ms.Destinations(), tc.reach...)

			var attacks []Square
			for _, ray := range ms.Attacks {
				attacks = append(attacks, ray...)
			}
			equalCoords(t, "attacks", attacks, tc.attacks...)
		})
	}
}

func TestAttackContinuesThroughCheckedKing(t *testing.T) {
	b := New()
	b.Place(sq(t, "a1"), NewPiece(Rook, Red))
	b.Place(sq(t, "e1"), NewPiece(King, Blue))

	ms := Generate(b, sq(t, "a1"))
	if !ms.Reaches(sq(t, "e1")) {
		t.Fatal("rook should reach the king")
	}
	if ms.Reaches(sq(t, "f1")) {
		t.Error("rook must not reach past the king")
	}
	if !ms.Threatens(sq(t, "f1")) || !ms.Threatens(sq(t, "h1")) {
		t.Error("rook should threaten the squares behind the king")
	}
}

func TestEnumerateDefended(t *testing.T) {
	b := New()
	b.Place(sq(t, "a3"), NewPiece(Rook, Red))
	b.Place(sq(t, "b3"), NewPiece(Rook, Red))
	b.Place(sq(t, "a1"), NewPiece(King, Blue))

	e := b.Enumerate(Red)
	if len(e.Pieces) != 2 {
		t.Fatalf("Enumerate found %d pieces, want 2", len(e.Pieces))
	}
	if !e.Defended.Has(sq(t, "a3")) || !e.Defended.Has(sq(t, "b3")) {
		t.Errorf("rooks should defend each other, got %v", Coordinates(e.Defended.Squares()))
	}
	if got := e.Reaching(sq(t, "a1")); len(got) != 1 || got[0].Square != sq(t, "a3") {
		t.Errorf("Reaching(a1) = %v, want the a3 rook", got)
	}
}
