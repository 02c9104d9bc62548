// Package app opens the configured storage backend and builds the board store.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/config"
	"github.com/pablasso/kanban/internal/logging"
	"github.com/pablasso/kanban/internal/storage"
)

// App bundles the store with the resources that back it.
type App struct {
	Config *config.Config
	Store  *board.Store
	Log    *logging.Logger

	closers []io.Closer
}

// Open connects the backend named in cfg and seeds the store from it.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log}

	slot, err := a.openSlot(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	entry := log.WithField("backend", cfg.Storage.Backend)
	todo := storage.NewTodoSlot(slot, cfg.Storage.Key, cfg.Storage.Timeout.Duration, entry)
	a.Store = board.NewStore(todo, board.WithLogger(entry))
	a.Store.Open(ctx)

	entry.WithField("key", todo.Key()).Info("board ready")
	return a, nil
}

func (a *App) openSlot(ctx context.Context) (storage.Slot, error) {
	s := a.Config.Storage
	switch s.Backend {
	case config.BackendMemory:
		return storage.NewMemorySlot(), nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, s.Timeout.Duration)
		defer cancel()
		slot, err := storage.DialRedis(ctx, s.RedisAddr, s.RedisDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, slot)
		return slot, nil
	case config.BackendFile:
		slot, err := storage.OpenFileSlot(s.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, slot)
		return slot, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", s.Backend)
}

// Close releases the backend and the log file.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	if err := a.Log.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
