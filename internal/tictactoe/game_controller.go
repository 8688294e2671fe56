package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type decisionEngine interface {
	SelectMove(board engine.Board, difficulty entity.Difficulty) (entity.Move, error)
}

// NewGame - a game on an empty board waiting for the human (X).
func NewGame(id string, difficulty entity.Difficulty) *entity.Game {
	return entity.NewGame(id, difficulty)
}

// ApplyHumanMove - places X at (row, col) and hands the turn to the computer
// unless the move ended the game.
func ApplyHumanMove(game *entity.Game, row, col int) (entity.Outcome, error) {
	if game.IsOver() {
		return game.Outcome, apperror.IllegalMove(apperror.ErrGameFinished)
	}

	if !game.IsAwaitingHumanMove() {
		return game.Outcome, apperror.IllegalMove(apperror.ErrNotYourTurn)
	}

	if err := game.Board.ApplyMove(row, col, entity.HumanMark); err != nil {
		return game.Outcome, fmt.Errorf("invalid turn: %w", err)
	}

	game.LastComputerMove = nil
	updateGameStatus(game, entity.HumanMark)

	return game.Outcome, nil
}

// ApplyComputerMove - lets the engine pick and place O. It must only be called
// after ApplyHumanMove left the game in progress.
func ApplyComputerMove(game *entity.Game, eng decisionEngine, difficulty entity.Difficulty) (entity.Move, entity.Outcome, error) {
	if game.IsOver() || game.Board.IsTerminal() {
		return entity.Move{}, game.Outcome, apperror.ErrNoLegalMoves
	}

	if !game.IsComputerTurn() {
		return entity.Move{}, game.Outcome, apperror.IllegalMove(apperror.ErrNotYourTurn)
	}

	move, err := eng.SelectMove(&game.Board, difficulty)
	if err != nil {
		return entity.Move{}, game.Outcome, fmt.Errorf("failed to select move: %w", err)
	}

	if err = game.Board.ApplyMove(move.Row, move.Col, entity.ComputerMark); err != nil {
		return entity.Move{}, game.Outcome, fmt.Errorf("engine chose %s: %w", move, err)
	}

	game.LastComputerMove = &move
	updateGameStatus(game, entity.ComputerMark)

	return move, game.Outcome, nil
}

// CurrentOutcome - recomputed from the grid, so repeated calls agree.
func CurrentOutcome(game *entity.Game) entity.Outcome {
	return game.Board.Outcome()
}

// Reset - starts a new game in place, the only way out of game over.
func Reset(game *entity.Game, difficulty entity.Difficulty) {
	game.Board.Reset()
	game.Difficulty = difficulty
	game.Phase = entity.PhaseAwaitingHumanMove
	game.Outcome = entity.Outcome{Status: entity.StatusInProgress}
	game.LastComputerMove = nil
}

// updateGameStatus - checks the game status after mark moved.
func updateGameStatus(game *entity.Game, mark entity.Mark) {
	game.Outcome = game.Board.Outcome()
	if game.Outcome.IsOver() {
		game.Phase = entity.PhaseGameOver
		game.Board.Turn = entity.Empty
		return
	}

	game.Board.Turn = mark.Opponent()
	if game.Board.Turn == entity.ComputerMark {
		game.Phase = entity.PhaseComputerTurn
	} else {
		game.Phase = entity.PhaseAwaitingHumanMove
	}
}
