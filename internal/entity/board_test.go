package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

func mustParse(t *testing.T, layout string) *Board {
	t.Helper()

	board, err := ParseBoard(layout)
	require.NoError(t, err)

	return board
}

func TestNewBoard(t *testing.T) {
	// Given: a new board
	board := NewBoard()

	// Then: it is empty, X moves first and the game is in progress
	assert.Equal(t, PlayerX, board.Turn)
	assert.Len(t, board.EmptyCells(), 9)
	assert.False(t, board.IsTerminal())
	assert.Equal(t, Outcome{Status: StatusInProgress}, board.Outcome())
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Sets the cell and keeps the turn", func(t *testing.T) {
		// Given: a new board
		board := NewBoard()

		// When: X plays the center
		err := board.ApplyMove(1, 1, PlayerX)

		// Then: the cell holds X and the turn is still X
		require.NoError(t, err)
		assert.Equal(t, PlayerX, board.At(1, 1))
		assert.Equal(t, PlayerX, board.Turn)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board where X holds (0,0)
		board := mustParse(t, "X _ _ / _ _ _ / _ _ _")
		before := *board

		// When: O tries the same cell
		err := board.ApplyMove(0, 0, PlayerO)

		// Then: the move is illegal and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *board)
	})

	t.Run("Error on move after a win", func(t *testing.T) {
		// Given: a board X has already won
		board := mustParse(t, "X X X / O O _ / _ _ _")

		// When: O tries to play an empty cell
		err := board.ApplyMove(1, 2, PlayerO)

		// Then: the move is illegal because the game is over
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, Empty, board.At(1, 2))
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		board := NewBoard()

		for _, move := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
			err := board.ApplyMove(move.Row, move.Col, PlayerX)

			require.ErrorIs(t, err, apperror.ErrIllegalMove, move.String())
			require.ErrorIs(t, err, apperror.ErrInvalidCell, move.String())
		}
	})

	t.Run("Error on empty mark", func(t *testing.T) {
		board := NewBoard()

		err := board.ApplyMove(0, 0, Empty)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, ErrInvalidMark)
	})
}

func TestBoard_UndoMove(t *testing.T) {
	// Given: a board with one move applied
	board := NewBoard()
	require.NoError(t, board.ApplyMove(2, 1, PlayerO))

	// When: the move is undone
	board.UndoMove(2, 1)

	// Then: the board is empty again
	assert.Equal(t, *NewBoard(), *board)
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		winner Mark
		found  bool
	}{
		{name: "row", layout: "X X X / O O _ / _ _ _", winner: PlayerX, found: true},
		{name: "column", layout: "X O _ / X O _ / _ O X", winner: PlayerO, found: true},
		{name: "main diagonal", layout: "X O _ / O X _ / _ _ X", winner: PlayerX, found: true},
		{name: "anti diagonal", layout: "X X O / X O _ / O _ _", winner: PlayerO, found: true},
		{name: "no winner", layout: "X O _ / _ X _ / _ _ O", winner: Empty, found: false},
		{name: "empty", layout: "_ _ _ / _ _ _ / _ _ _", winner: Empty, found: false},
		// malformed boards: the first line in row, column, diagonal order wins
		{name: "double row winner picks top row", layout: "O O O / X X X / _ _ _", winner: PlayerO, found: true},
		{name: "double row winner picks top row X", layout: "X X X / O O O / _ _ _", winner: PlayerX, found: true},
		{name: "double column winner picks left column", layout: "O _ X / O _ X / O _ X", winner: PlayerO, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustParse(t, tt.layout)

			winner, found := board.Winner()

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestBoard_WinningMoveScenario(t *testing.T) {
	// Given: X X _ / O O _ / _ _ _ with X to move
	board := mustParse(t, "X X _ / O O _ / _ _ _")
	require.Equal(t, PlayerX, board.Turn)

	// When: X plays (0,2)
	require.NoError(t, board.ApplyMove(0, 2, PlayerX))

	// Then: X is the winner and the board is terminal
	winner, ok := board.Winner()
	assert.True(t, ok)
	assert.Equal(t, PlayerX, winner)
	assert.True(t, board.IsTerminal())
	assert.True(t, board.HasWon(PlayerX))
	assert.False(t, board.HasWon(PlayerO))
	assert.Equal(t, WinFor(PlayerX), board.Outcome())
}

func TestBoard_Draw(t *testing.T) {
	// Given: a full board with no line for either mark
	board := mustParse(t, "X O X / X O O / O X X")

	// Then: it is a draw with no winner
	_, ok := board.Winner()
	assert.False(t, ok)
	assert.True(t, board.IsFull())
	assert.True(t, board.IsDraw())
	assert.True(t, board.IsTerminal())
	assert.Empty(t, board.EmptyCells())
	assert.Equal(t, Outcome{Status: StatusDraw}, board.Outcome())
}

func TestBoard_FullBoardWithWinnerIsNotDraw(t *testing.T) {
	board := mustParse(t, "X X X / O O X / X O O")

	assert.True(t, board.IsFull())
	assert.False(t, board.IsDraw())
	assert.Equal(t, WinFor(PlayerX), board.Outcome())
}

func TestBoard_OutcomeIsIdempotent(t *testing.T) {
	board := mustParse(t, "X O _ / _ X _ / _ _ _")

	first := board.Outcome()
	second := board.Outcome()

	assert.Equal(t, first, second)
}

func TestBoard_EmptyCellsRowMajor(t *testing.T) {
	board := mustParse(t, "X _ O / _ X _ / O _ _")

	assert.Equal(t, []Move{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}, board.EmptyCells())
}

func TestBoard_Reset(t *testing.T) {
	board := mustParse(t, "X O X / _ O _ / _ _ _")

	board.Reset()

	assert.Equal(t, *NewBoard(), *board)
}

func TestParseBoard(t *testing.T) {
	t.Run("Round trips through String", func(t *testing.T) {
		layout := "X X _ / O O _ / _ _ _"

		board := mustParse(t, layout)

		assert.Equal(t, layout, board.String())
		assert.Equal(t, PlayerX, board.Turn)
	})

	t.Run("O moves when X has one more mark", func(t *testing.T) {
		board := mustParse(t, "X _ _ / _ _ _ / _ _ _")

		assert.Equal(t, PlayerO, board.Turn)
	})

	t.Run("Rejects wrong cell count", func(t *testing.T) {
		_, err := ParseBoard("X X / _ _")

		require.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("Rejects unknown tokens", func(t *testing.T) {
		_, err := ParseBoard("X X Z / _ _ _ / _ _ _")

		require.ErrorIs(t, err, ErrInvalidLayout)
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}

func TestParseDifficulty(t *testing.T) {
	hard, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, Hard, hard)

	normal, err := ParseDifficulty("normal")
	require.NoError(t, err)
	assert.Equal(t, Normal, normal)

	_, err = ParseDifficulty("impossible")
	require.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestBoard_ReachableBoards(t *testing.T) {
	// Given: every board reachable from an empty board by legal alternating play
	var visited int
	var walk func(board *Board, mark Mark)
	walk = func(board *Board, mark Mark) {
		visited++

		// Then: counts stay balanced and the winner matches the per-mark line check
		xCount, oCount := board.Count(PlayerX), board.Count(PlayerO)
		if xCount != oCount && xCount != oCount+1 {
			t.Fatalf("unbalanced board %s", board)
		}

		winner, ok := board.Winner()
		if ok {
			if !board.HasWon(winner) || board.HasWon(winner.Opponent()) || !board.IsTerminal() {
				t.Fatalf("inconsistent winner %s on %s", winner, board)
			}
			return
		}

		if board.IsFull() {
			if !board.IsDraw() {
				t.Fatalf("full board %s is not a draw", board)
			}
			return
		}

		for _, move := range board.EmptyCells() {
			require.NoError(t, board.ApplyMove(move.Row, move.Col, mark))
			walk(board, mark.Opponent())
			board.UndoMove(move.Row, move.Col)
		}
	}

	walk(NewBoard(), PlayerX)

	// 549946 is the number of nodes in the tic-tac-toe game tree
	assert.Equal(t, 549946, visited)
}
