package apperror

import (
	"errors"
	"fmt"
)

// ErrIllegalMove and ErrNoLegalMoves are the roots of the error taxonomy.
// Every rejected move wraps ErrIllegalMove together with one of the detail errors below.
var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoLegalMoves = errors.New("no legal moves")
)

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell")
)

// IllegalMove - wraps reason into ErrIllegalMove so both match errors.Is.
func IllegalMove(reason error) error {
	return fmt.Errorf("%w: %w", ErrIllegalMove, reason)
}
