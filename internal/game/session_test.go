package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/endgame"
)

func play(t *testing.T, s *Session, moves ...string) Report {
	t.Helper()
	var r Report
	for _, mv := range moves {
		var err error
		r, err = s.Play(MoveRequest{From: mv[:2], To: mv[2:4]})
		if err != nil {
			t.Fatalf("Play(%s): %v", mv, err)
		}
	}
	return r
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.Turn() != board.Red {
		t.Errorf("Turn = %s, want red", s.Turn())
	}
	if s.FEN() != board.StartFEN {
		t.Errorf("FEN = %s, want %s", s.FEN(), board.StartFEN)
	}
	got := strings.Join(s.MovablePieces(), " ")
	want := "a2 b1 b2 c2 d2 e2 f2 g1 g2 h2"
	if got != want {
		t.Errorf("MovablePieces = %s, want %s", got, want)
	}
}

func TestLegalDestinations(t *testing.T) {
	s := NewSession()

	dests, err := s.LegalDestinations("g1")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(dests, " "); got != "f3 h3" {
		t.Errorf("LegalDestinations(g1) = %s, want f3 h3", got)
	}

	tests := []struct {
		coord string
		want  error
	}{
		{"e7", board.ErrIllegalMove},
		{"e4", board.ErrIllegalMove},
		{"a1", board.ErrIllegalMove},
		{"z9", board.ErrInvalidSquare},
	}
	for _, tt := range tests {
		if _, err := s.LegalDestinations(tt.coord); !errors.Is(err, tt.want) {
			t.Errorf("LegalDestinations(%s): err = %v, want %v", tt.coord, err, tt.want)
		}
	}
}

func TestPlayRejectsIllegalMoves(t *testing.T) {
	s := NewSession()
	if _, err := s.Play(MoveRequest{From: "e2", To: "e5"}); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("e2e5: err = %v, want ErrIllegalMove", err)
	}
	if _, err := s.Play(MoveRequest{From: "e7", To: "e5"}); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("blue moving first: err = %v, want ErrIllegalMove", err)
	}
	split := []MoveRequest{
		{From: "e2e", To: "4"},
		{From: "e", To: "24"},
		{From: "e2", To: ""},
	}
	for _, req := range split {
		if _, err := s.Play(req); !errors.Is(err, board.ErrInvalidSquare) {
			t.Errorf("%+v: err = %v, want ErrInvalidSquare", req, err)
		}
	}
	if s.Turn() != board.Red {
		t.Error("rejected move must not switch turn")
	}
}

func TestPlayReportsCapture(t *testing.T) {
	s := NewSession()
	r := play(t, s, "e2e4", "d7d5", "e4d5")
	if r.Captured == nil || r.Captured.Color != board.Blue {
		t.Fatalf("Captured = %+v, want a blue piece", r.Captured)
	}
	if r.Mover != board.Red || r.Turn != board.Blue || r.Status != endgame.InPlay {
		t.Errorf("report = %+v", r)
	}
}

func TestFoolsMate(t *testing.T) {
	s := NewSession()
	r := play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	if r.Status != endgame.Checkmate {
		t.Fatalf("Status = %s, want checkmate", r.Status)
	}
	winner, ok := s.Winner()
	if !ok || winner != board.Blue {
		t.Errorf("Winner = %s, %v, want blue", winner, ok)
	}
	if _, err := s.Play(MoveRequest{From: "a2", To: "a3"}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Play after mate: err = %v, want ErrGameOver", err)
	}
	if pieces := s.MovablePieces(); len(pieces) != 0 {
		t.Errorf("MovablePieces after mate = %v", pieces)
	}
}

func TestCastlingThroughPlay(t *testing.T) {
	s, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	r := play(t, s, "e1g1")
	if r.Kind != "castle" {
		t.Errorf("Kind = %s, want castle", r.Kind)
	}
	if got := s.FEN(); got != "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 0 1" {
		t.Errorf("FEN = %s", got)
	}
}

func TestPendingPromotion(t *testing.T) {
	s, err := FromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	r := play(t, s, "a7a8")
	if !r.PromotionPending || !s.PromotionPending() {
		t.Fatal("promotion should be pending")
	}
	if s.Turn() != board.Red {
		t.Error("turn must not pass while a promotion is owed")
	}
	if _, err := s.Play(MoveRequest{From: "h1", To: "h2"}); !errors.Is(err, ErrPromotionPending) {
		t.Errorf("Play while pending: err = %v, want ErrPromotionPending", err)
	}
	if _, err := s.Promote(board.King); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Promote(king): err = %v, want ErrIllegalMove", err)
	}

	r, err = s.Promote(board.Queen)
	if err != nil {
		t.Fatal(err)
	}
	if r.Move != "a7a8q" || r.Turn != board.Blue || r.Status != endgame.Check {
		t.Errorf("report = %+v", r)
	}
	if _, err := s.Promote(board.Queen); !errors.Is(err, board.ErrPromotionUnavailable) {
		t.Errorf("second Promote: err = %v, want ErrPromotionUnavailable", err)
	}
}

func TestPromotionInRequest(t *testing.T) {
	tests := []struct {
		req     MoveRequest
		wantErr error
		want    board.PieceKind
	}{
		{MoveRequest{From: "a7", To: "a8", Promotion: "knight"}, nil, board.Knight},
		{MoveRequest{From: "a7", To: "a8", Promotion: "Rook"}, nil, board.Rook},
		{MoveRequest{From: "a7", To: "a8", Promotion: "king"}, board.ErrIllegalMove, board.Pawn},
		{MoveRequest{From: "h1", To: "h2", Promotion: "queen"}, board.ErrIllegalMove, board.Pawn},
	}
	for _, tt := range tests {
		s, err := FromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		_, err = s.Play(tt.req)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%+v: err = %v, want %v", tt.req, err, tt.wantErr)
			continue
		}
		a8, _ := board.ParseSquare("a8")
		a7, _ := board.ParseSquare("a7")
		at := a8
		if tt.wantErr != nil {
			at = a7
		}
		if got := s.Board().PieceAt(at).Kind; got != tt.want {
			t.Errorf("%+v: piece on %s = %s, want %s", tt.req, at, got, tt.want)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSession()
	play(t, s, "e2e4", "c7c5", "e4e5", "d7d5")

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(data)
	if err != nil {
		t.Fatal(err)
	}
	if restored.FEN() != s.FEN() {
		t.Errorf("FEN = %s, want %s", restored.FEN(), s.FEN())
	}
	if restored.Turn() != board.Red || restored.Players() != s.Players() {
		t.Errorf("restored turn %s players %v", restored.Turn(), restored.Players())
	}

	// The en passant window survives the round trip.
	r, err := restored.Play(MoveRequest{From: "e5", To: "d6"})
	if err != nil {
		t.Fatalf("en passant after restore: %v", err)
	}
	if r.Kind != "en passant" {
		t.Errorf("Kind = %s, want en passant", r.Kind)
	}
}

func TestRestorePendingPromotion(t *testing.T) {
	s, err := FromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	play(t, s, "a7a8")
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(data)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.PromotionPending() {
		t.Fatal("pending promotion lost")
	}
	r, err := restored.Promote(board.Rook)
	if err != nil {
		t.Fatal(err)
	}
	if r.Move != "a7a8r" {
		t.Errorf("Move = %s, want a7a8r", r.Move)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	if _, err := Restore([]byte("{not json")); err == nil {
		t.Error("Restore of invalid JSON succeeded")
	}
}
