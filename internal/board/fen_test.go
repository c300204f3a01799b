package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1",
		"rnbqkbnr/pppp1ppp/8/8/3Pp3/8/PPP1PPPP/RNBQKBNR b Kq d3 0 1",
	}

	for _, fen := range fens {
		b, toMove, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(toMove); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENCounters(t *testing.T) {
	b, toMove, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if toMove != Blue {
		t.Errorf("side to move = %s, want blue", toMove)
	}

	tests := []struct {
		square string
		moves  int
	}{
		{"h1", 0}, {"a1", 1}, {"e1", 0},
		{"a8", 0}, {"h8", 1}, {"e8", 0},
	}
	for _, tc := range tests {
		if got := b.PieceAt(sq(t, tc.square)).Moves; got != tc.moves {
			t.Errorf("%s move counter = %d, want %d", tc.square, got, tc.moves)
		}
	}

	pawn, ok := b.EnPassantPawn()
	if ok {
		t.Errorf("unexpected en passant pawn %s", pawn)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/7x w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"8/8/8/8/8/8/8/8 w K - 0 1",
		"8/8/8/8/8/8/8/8 w - e3 0 1",
	}
	for _, fen := range bad {
		if _, _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}
