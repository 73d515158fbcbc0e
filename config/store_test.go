package config_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/plus3/manysnakes/config"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *config.Store {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("manysnakes_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("cannot open a data directory: %v", err)
	}
	return config.NewStore(m)
}

func TestStore(t *testing.T) {
	t.Run("defaults when nothing is saved", func(t *testing.T) {
		store := openTestStore(t)
		assert.False(t, store.Exists())

		cfg, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("save and load", func(t *testing.T) {
		store := openTestStore(t)

		cfg := config.Default()
		cfg.FPS = 30
		cfg.Snake.Direction = "right"
		require.NoError(t, store.Save(cfg))
		assert.True(t, store.Exists())

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("save rejects invalid configs", func(t *testing.T) {
		store := openTestStore(t)

		cfg := config.Default()
		cfg.FPS = 0
		assert.ErrorIs(t, store.Save(cfg), config.ErrInvalidConfig)
		assert.False(t, store.Exists())
	})

	t.Run("nil manager", func(t *testing.T) {
		store := config.NewStore(nil)
		assert.False(t, store.Exists())
		require.NoError(t, store.Save(config.Default()))

		cfg, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})
}
