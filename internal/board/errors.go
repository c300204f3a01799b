package board

import "errors"

var (
	ErrInvalidSquare        = errors.New("invalid square")
	ErrIllegalMove          = errors.New("illegal move")
	ErrPromotionUnavailable = errors.New("promotion unavailable")
	ErrNoKingFound          = errors.New("no king found")
)
