package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pablasso/kanban/internal/board"
)

// DefaultKey is the slot key holding the todo column.
const DefaultKey = "todoTasks"

// TodoSlot persists the todo column as a JSON array under one key of a Slot.
// It implements board.Persister.
type TodoSlot struct {
	slot    Slot
	key     string
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewTodoSlot returns a TodoSlot over slot. An empty key selects DefaultKey.
// A zero timeout leaves the caller's context untouched.
func NewTodoSlot(slot Slot, key string, timeout time.Duration, log logrus.FieldLogger) *TodoSlot {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &TodoSlot{slot: slot, key: key, timeout: timeout, log: log}
}

// Key returns the slot key.
func (t *TodoSlot) Key() string {
	return t.key
}

// Load returns the stored todo column. Missing, unreadable or malformed
// data yields an empty slice.
func (t *TodoSlot) Load(ctx context.Context) []board.Task {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	data, err := t.slot.Get(ctx, t.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.log.WithError(err).WithField("key", t.key).Warn("failed to read todo column, starting empty")
		}
		return []board.Task{}
	}

	var tasks []board.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.log.WithError(err).WithField("key", t.key).Warn("stored todo column is malformed, starting empty")
		return []board.Task{}
	}
	if tasks == nil {
		return []board.Task{}
	}
	return tasks
}

// Save writes tasks as a JSON array.
func (t *TodoSlot) Save(ctx context.Context, tasks []board.Task) error {
	if tasks == nil {
		tasks = []board.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal todo column: %w", err)
	}

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	if err := t.slot.Set(ctx, t.key, data); err != nil {
		return err
	}
	t.log.WithField("tasks", len(tasks)).Debug("todo column saved")
	return nil
}

func (t *TodoSlot) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.timeout)
}
