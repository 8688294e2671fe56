package application

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
)

func TestNewGameRepository(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory storage", func(t *testing.T) {
		repo, closeRepo, err := newGameRepository(context.Background(), log, &config.Config{Storage: config.StorageMemory})

		require.NoError(t, err)
		assert.NotNil(t, repo)
		closeRepo()
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newGameRepository(context.Background(), log, &config.Config{Storage: "etcd"})

		require.ErrorIs(t, err, config.ErrUnknownStorage)
	})
}

func TestRunApp_InvalidDifficulty(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := RunApp(log, &config.Config{Storage: config.StorageMemory, DefaultDifficulty: "extreme"})

	require.Error(t, err)
}
