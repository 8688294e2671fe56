package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solo/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

// lockStripes bounds the number of turn locks no matter how many ids clients send.
const lockStripes = 64

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type decisionEngine interface {
	SelectMove(board engine.Board, difficulty entity.Difficulty) (entity.Move, error)
}

// GameManager runs whole turns: the human move, the terminal check and, when the
// game goes on, the computer reply, then stores the result.
type GameManager struct {
	logger *slog.Logger

	gameRepo          gameRepo
	engine            decisionEngine
	defaultDifficulty entity.Difficulty

	// games hash onto a fixed set of locks so a turn is applied atomically
	locks [lockStripes]sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, eng decisionEngine, defaultDifficulty entity.Difficulty) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:          gameRepo,
		engine:            eng,
		defaultDifficulty: defaultDifficulty,
	}
}

// CreateGame - an empty board at the given difficulty; "" picks the configured default.
func (that *GameManager) CreateGame(ctx context.Context, difficulty string) (*entity.Game, error) {
	level, err := that.parseDifficulty(difficulty, that.defaultDifficulty)
	if err != nil {
		return nil, err
	}

	game := tictactoe.NewGame(uuid.NewString(), level)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move at (row, col) and, unless that ended the game,
// the computer's reply. The returned game carries the reply in LastComputerMove.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if _, err = tictactoe.ApplyHumanMove(game, row, col); err != nil {
		log.Debug("human move rejected", "row", row, "col", col, "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsOver() {
		var move entity.Move
		if move, _, err = tictactoe.ApplyComputerMove(game, that.engine, game.Difficulty); err != nil {
			return nil, fmt.Errorf("computer failed to make turn: %w", err)
		}

		log.Debug("computer moved", "move", move.String(), "difficulty", game.Difficulty)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsOver() {
		log.Info("game over", "outcome", game.Outcome.String(), "board", game.Board.String())
	}

	return game, nil
}

// RestartGame - resets the board; "" keeps the game's current difficulty.
func (that *GameManager) RestartGame(ctx context.Context, gameID, difficulty string) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	level, err := that.parseDifficulty(difficulty, game.Difficulty)
	if err != nil {
		return nil, err
	}

	tictactoe.Reset(game, level)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game restarted", "gameID", game.ID, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.lock(gameID)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *GameManager) parseDifficulty(value string, fallback entity.Difficulty) (entity.Difficulty, error) {
	if value == "" {
		return fallback, nil
	}

	level, err := entity.ParseDifficulty(value)
	if err != nil {
		return "", fmt.Errorf("failed to parse difficulty: %w", err)
	}

	return level, nil
}

func (that *GameManager) lock(gameID string) func() {
	m := &that.locks[lockIndex(gameID)]
	m.Lock()

	return m.Unlock
}

func lockIndex(gameID string) uint64 {
	return xxhash.Sum64String(gameID) % lockStripes
}
