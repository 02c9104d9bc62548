package board

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pablasso/kanban/internal/util"
)

// Persister loads and saves the todo column.
// Load never fails: absent or unreadable data yields an empty slice.
type Persister interface {
	Load(ctx context.Context) []Task
	Save(ctx context.Context, tasks []Task) error
}

// Store owns a Board and is the only path through which it changes.
// It is not safe for concurrent use; callers run it from a single event loop.
type Store struct {
	board     *Board
	persister Persister
	newID     func() string
	log       logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides task ID generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for store events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a Store with an empty board. Call Open to seed the
// todo column from p.
func NewStore(p Persister, opts ...Option) *Store {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		board:     NewBoard(),
		persister: p,
		newID:     util.NewTaskID,
		log:       discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open resets the board: todo is loaded from the persister, Running and
// Completed start empty.
func (s *Store) Open(ctx context.Context) {
	s.board = NewBoard()
	if s.persister == nil {
		return
	}
	todo := s.persister.Load(ctx)
	if todo == nil {
		todo = []Task{}
	}
	s.board.set(ColumnTodo, dedupe(todo))
	s.log.WithField("tasks", len(todo)).Debug("board opened")
}

// Board returns a deep copy of the current board.
func (s *Store) Board() *Board {
	return s.board.Clone()
}

// Tasks returns a copy of the tasks in col.
func (s *Store) Tasks(col Column) []Task {
	return s.board.Tasks(col)
}

// Add appends a new task to the todo column and saves it. Whitespace-only
// content is ignored and reported with ok == false.
func (s *Store) Add(ctx context.Context, content string) (task Task, ok bool, err error) {
	if strings.TrimSpace(content) == "" {
		return Task{}, false, nil
	}

	task = Task{ID: s.newID(), Content: content}
	s.board.set(ColumnTodo, append(s.board.Tasks(ColumnTodo), task))
	s.log.WithField("id", task.ID).Debug("task added")

	if err := s.save(ctx); err != nil {
		return task, true, err
	}
	return task, true, nil
}

// ApplyDrag applies a finished drag gesture. A cancelled drag leaves the
// board untouched and reports changed == false. The todo column is saved
// when the drag touched it.
func (s *Store) ApplyDrag(ctx context.Context, r DragResult) (changed bool, err error) {
	modified, err := Resolve(s.board, r)
	if err != nil {
		s.log.WithError(err).Warn("drag rejected")
		return false, err
	}
	if len(modified) == 0 {
		return false, nil
	}

	s.log.WithFields(logrus.Fields{
		"from": fmt.Sprintf("%s[%d]", r.Source.Column, r.Source.Index),
		"to":   fmt.Sprintf("%s[%d]", r.Destination.Column, r.Destination.Index),
	}).Debug("task moved")

	if slices.Contains(modified, ColumnTodo) {
		if err := s.save(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (s *Store) save(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.board.Tasks(ColumnTodo)); err != nil {
		s.log.WithError(err).Error("failed to save todo column")
		return fmt.Errorf("failed to save todo column: %w", err)
	}
	return nil
}

// dedupe drops tasks whose ID was already seen, keeping the first.
func dedupe(tasks []Task) []Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
