package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type memEntry struct {
	game      *entity.Game
	expiresAt time.Time
}

type memGame struct {
	mu    sync.RWMutex
	games map[string]memEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - keeps games in process memory; they are gone on restart.
// Like the Redis store, each write restarts the game's ttl; a zero ttl keeps games forever.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memGame{
		games: make(map[string]memEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.evictExpired(now)

	entry := memEntry{game: cloneGame(game)}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.games[game.ID] = entry

	return nil
}

func (that *memGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return &entity.Game{}, ErrGameNotFound
	}

	return cloneGame(entry.game), nil
}

func (that *memGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// lookup - drops the entry when it has expired. Callers hold mu.
func (that *memGame) lookup(id string) (memEntry, bool) {
	entry, ok := that.games[id]
	if !ok {
		return memEntry{}, false
	}

	if entry.expired(that.now()) {
		delete(that.games, id)
		return memEntry{}, false
	}

	return entry, true
}

func (that *memGame) evictExpired(now time.Time) {
	for id, entry := range that.games {
		if entry.expired(now) {
			delete(that.games, id)
		}
	}
}

func (that memEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// cloneGame - callers never share the stored value.
func cloneGame(game *entity.Game) *entity.Game {
	cp := *game
	if game.LastComputerMove != nil {
		move := *game.LastComputerMove
		cp.LastComputerMove = &move
	}

	return &cp
}
