package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// Minimax scores board for me assuming perfect alternating play: +1 if me wins, -1 if the
// opponent wins, 0 for a draw. maximizing means it is me to move.
//
// The search is exhaustive with no pruning and no depth discount, so a fast win and a slow
// win score the same. Every simulated move is undone before returning. Minimax panics if
// board rejects a move on a cell it reported as empty.
func Minimax(board Board, me entity.Mark, maximizing bool) int {
	switch {
	case board.HasWon(me):
		return scoreWin
	case board.HasWon(me.Opponent()):
		return scoreLoss
	case board.IsFull():
		return scoreDraw
	}

	mark, best := me, scoreLoss
	if !maximizing {
		mark, best = me.Opponent(), scoreWin
	}

	for _, move := range board.EmptyCells() {
		// a rejected empty cell means the board broke apply/undo symmetry; a skipped branch would corrupt the score
		if err := board.ApplyMove(move.Row, move.Col, mark); err != nil {
			panic(fmt.Sprintf("minimax: move %s on an empty cell rejected: %v", move.String(), err))
		}

		score := Minimax(board, me, !maximizing)
		board.UndoMove(move.Row, move.Col)

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
