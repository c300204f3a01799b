package endgame

import "github.com/hailam/chessrules/internal/board"

// Status classifies a position from the point of view of one color.
type Status uint8

const (
	InPlay Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{"in_play", "check", "checkmate", "stalemate"}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	*s = InPlay
	return nil
}

// IsOver returns true for terminal statuses.
func (s Status) IsOver() bool {
	return s == Checkmate || s == Stalemate
}

// Status evaluates the position for c, stalemate first, then checkmate.
func (e *Evaluator) Status(c board.Color) Status {
	switch {
	case e.IsStalemate(c):
		return Stalemate
	case e.IsCheckmate(c):
		return Checkmate
	case e.KingInCheck(c):
		return Check
	}
	return InPlay
}
