package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position. Red plays the
// uppercase (white) pieces and moves first.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castlingRight ties a FEN castling character to the rook it keeps unmoved.
type castlingRight struct {
	char  byte
	color Color
	col   int
}

var castlingRights = []castlingRight{
	{'K', Red, 7},
	{'Q', Red, 0},
	{'k', Blue, 7},
	{'q', Blue, 0},
}

// ParseFEN parses a FEN string into a board and the color to move.
// Castling rights become move counters: a king or rook keeps a counter of
// zero only if a right names it. Move clocks are accepted and ignored.
func ParseFEN(fen string) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, Blue, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := New()
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, Blue, err
	}

	var toMove Color
	switch parts[1] {
	case "w":
		toMove = Red
	case "b":
		toMove = Blue
	default:
		return nil, Blue, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, Blue, err
	}

	if parts[3] != "-" {
		target, err := ParseSquare(parts[3])
		if err != nil {
			return nil, Blue, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		// The pawn that just advanced belongs to the side not to move.
		pawn, ok := target.offset(toMove.Other().pawnDirection(), 0)
		if !ok || b.grid[pawn].Kind != Pawn || b.grid[pawn].Color == toMove {
			return nil, Blue, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		b.enPassant = pawn
	}

	return b, toMove, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			p, ok := pieceFromChar(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			if p.Kind == Rook || p.Kind == King {
				p.Moves = 1
			}
			b.grid[NewSquare(row, col)] = p
			col++
		}
		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}
	return nil
}

// parseCastlingRights resets the move counters of the pieces each right names.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for i := 0; i < len(castling); i++ {
		var right *castlingRight
		for j := range castlingRights {
			if castlingRights[j].char == castling[i] {
				right = &castlingRights[j]
			}
		}
		if right == nil {
			return fmt.Errorf("invalid castling character: %c", castling[i])
		}

		row := right.color.backRank()
		king, rook := NewSquare(row, 4), NewSquare(row, right.col)
		if p := b.grid[king]; p.Kind != King || p.Color != right.color {
			return fmt.Errorf("castling right %c without king on %s", right.char, king)
		}
		if p := b.grid[rook]; p.Kind != Rook || p.Color != right.color {
			return fmt.Errorf("castling right %c without rook on %s", right.char, rook)
		}
		b.grid[king].Moves = 0
		b.grid[rook].Moves = 0
	}
	return nil
}

// FEN returns the FEN representation of the board with toMove to play.
func (b *Board) FEN(toMove Color) string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.grid[NewSquare(row, col)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if toMove == Red {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	for _, right := range castlingRights {
		row := right.color.backRank()
		king, rook := b.grid[NewSquare(row, 4)], b.grid[NewSquare(row, right.col)]
		if king.Kind == King && king.Color == right.color && king.Moves == 0 &&
			rook.Kind == Rook && rook.Color == right.color && rook.Moves == 0 {
			rights += string(right.char)
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if pawn, ok := b.EnPassantPawn(); ok {
		target, _ := pawn.offset(-b.grid[pawn].Color.pawnDirection(), 0)
		sb.WriteString(target.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 1")
	return sb.String()
}
