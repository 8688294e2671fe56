package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Board is the part of entity.Board the engine searches on.
type Board interface {
	ApplyMove(row, col int, mark entity.Mark) error
	UndoMove(row, col int)
	HasWon(mark entity.Mark) bool
	IsFull() bool
	IsTerminal() bool
	EmptyCells() []entity.Move
}

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

type Option func(*Engine)

// WithMark makes the engine play mark instead of O.
func WithMark(mark entity.Mark) Option {
	return func(that *Engine) {
		that.mark = mark
	}
}

// WithRand injects the random source used by Normal difficulty.
func WithRand(rnd RandSource) Option {
	return func(that *Engine) {
		that.rnd = rnd
	}
}

// WithSeed seeds a PCG source so Normal difficulty is reproducible.
func WithSeed(seed uint64) Option {
	return func(that *Engine) {
		that.rnd = rand.New(rand.NewPCG(seed, seed)) //nolint: gosec // game moves, not secrets
	}
}

// Engine selects the computer's move. It never keeps a copy of the board.
type Engine struct {
	mark entity.Mark

	mu  sync.Mutex
	rnd RandSource
}

func New(opts ...Option) *Engine {
	seed := uint64(time.Now().UnixNano())

	that := &Engine{
		mark: entity.ComputerMark,
		rnd:  rand.New(rand.NewPCG(seed, seed>>1)), //nolint: gosec // game moves, not secrets
	}

	for _, opt := range opts {
		opt(that)
	}

	return that
}

// Mark is the mark the engine plays.
func (that *Engine) Mark() entity.Mark {
	return that.mark
}

// SelectMove returns one legal move for the engine's mark without changing the board.
// Calling it on a terminal board is a caller bug and yields apperror.ErrNoLegalMoves.
func (that *Engine) SelectMove(board Board, difficulty entity.Difficulty) (entity.Move, error) {
	if board.IsTerminal() {
		return entity.Move{}, apperror.ErrNoLegalMoves
	}

	switch difficulty {
	case entity.Hard:
		return that.bestMove(board)
	case entity.Normal:
		return that.randomMove(board)
	default:
		return entity.Move{}, fmt.Errorf("%w: %q", entity.ErrUnknownDifficulty, difficulty)
	}
}

// bestMove keeps the first candidate with the strictly greatest minimax score, scanning row-major.
func (that *Engine) bestMove(board Board) (entity.Move, error) {
	bestScore := math.MinInt
	var best entity.Move

	for _, move := range board.EmptyCells() {
		if err := board.ApplyMove(move.Row, move.Col, that.mark); err != nil {
			return entity.Move{}, fmt.Errorf("failed to simulate move %s: %w", move, err)
		}

		score := Minimax(board, that.mark, false)
		board.UndoMove(move.Row, move.Col)

		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	if bestScore == math.MinInt {
		return entity.Move{}, apperror.ErrNoLegalMoves
	}

	return best, nil
}

func (that *Engine) randomMove(board Board) (entity.Move, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return entity.Move{}, apperror.ErrNoLegalMoves
	}

	that.mu.Lock()
	idx := that.rnd.IntN(len(cells))
	that.mu.Unlock()

	return cells[idx], nil
}
