package game

import "errors"

var (
	ErrPromotionPending = errors.New("promotion pending")
	ErrGameOver         = errors.New("game over")
)
