package server

import (
	"errors"
	"net/http"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	ErrGameNotFound = errors.New("game not found")
	errBadRequest   = errors.New("bad request")
)

// statusFor maps an error to the HTTP status code reported for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrInvalidSquare),
		errors.Is(err, board.ErrIllegalMove),
		errors.Is(err, storage.ErrInvalidName):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrGameNotFound),
		errors.Is(err, storage.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrPromotionPending),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, board.ErrPromotionUnavailable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
