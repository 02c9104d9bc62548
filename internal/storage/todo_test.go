package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pablasso/kanban/internal/board"
)

type failingSlot struct{ err error }

func (f failingSlot) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f failingSlot) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}

func TestTodoSlot_RoundTrip(t *testing.T) {
	slots := map[string]func(t *testing.T) Slot{
		"memory": func(t *testing.T) Slot { return NewMemorySlot() },
		"file":   func(t *testing.T) Slot { return openTestFileSlot(t) },
		"redis": func(t *testing.T) Slot {
			s, _ := newTestRedisSlot(t)
			return s
		},
	}

	for name, newSlot := range slots {
		t.Run(name, func(t *testing.T) {
			todo := NewTodoSlot(newSlot(t), "", 0, nil)
			ctx := context.Background()
			want := []board.Task{
				{ID: "task-1", Content: "buy milk"},
				{ID: "task-2", Content: "with \"quotes\" and ünïcode"},
			}

			if err := todo.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got := todo.Load(ctx); !reflect.DeepEqual(got, want) {
				t.Errorf("Load = %+v, want %+v", got, want)
			}
		})
	}
}

func TestTodoSlot_DefaultKey(t *testing.T) {
	slot := NewMemorySlot()
	todo := NewTodoSlot(slot, "", 0, nil)
	if todo.Key() != DefaultKey {
		t.Errorf("Key() = %q, want %q", todo.Key(), DefaultKey)
	}

	if err := todo.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := slot.Get(context.Background(), DefaultKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("stored %q, want []", raw)
	}
}

func TestTodoSlot_WireFormat(t *testing.T) {
	slot := NewMemorySlot()
	todo := NewTodoSlot(slot, "todoTasks", 0, nil)

	if err := todo.Save(context.Background(), []board.Task{{ID: "task-1", Content: "a"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _ := slot.Get(context.Background(), "todoTasks")
	if string(raw) != `[{"id":"task-1","content":"a"}]` {
		t.Errorf("stored %s", raw)
	}
}

func TestTodoSlot_LoadTolerant(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{oops"},
		{"object instead of array", `{"id":"a"}`},
		{"null", "null"},
		{"wrong element type", `[1,2,3]`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewMemorySlot()
			_ = slot.Set(context.Background(), DefaultKey, []byte(tt.value))

			got := NewTodoSlot(slot, "", 0, nil).Load(context.Background())
			if got == nil || len(got) != 0 {
				t.Errorf("Load = %#v, want empty slice", got)
			}
		})
	}

	t.Run("missing key", func(t *testing.T) {
		got := NewTodoSlot(NewMemorySlot(), "", 0, nil).Load(context.Background())
		if got == nil || len(got) != 0 {
			t.Errorf("Load = %#v, want empty slice", got)
		}
	})

	t.Run("read error", func(t *testing.T) {
		got := NewTodoSlot(failingSlot{err: errors.New("boom")}, "", 0, nil).Load(context.Background())
		if got == nil || len(got) != 0 {
			t.Errorf("Load = %#v, want empty slice", got)
		}
	})
}

func TestTodoSlot_LegacyIDs(t *testing.T) {
	slot := NewMemorySlot()
	_ = slot.Set(context.Background(), DefaultKey, []byte(`[{"id":"task-1700000000000","content":"old"}]`))

	got := NewTodoSlot(slot, "", 0, nil).Load(context.Background())
	want := []board.Task{{ID: "task-1700000000000", Content: "old"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestTodoSlot_SaveError(t *testing.T) {
	boom := errors.New("boom")
	err := NewTodoSlot(failingSlot{err: boom}, "", 0, nil).Save(context.Background(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestTodoSlot_WithStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	ctx := context.Background()

	slot, err := OpenFileSlot(path)
	if err != nil {
		t.Fatalf("OpenFileSlot: %v", err)
	}
	s := board.NewStore(NewTodoSlot(slot, "", 0, nil))
	s.Open(ctx)
	if _, _, err := s.Add(ctx, "first"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, _, err := s.Add(ctx, "second"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.ApplyDrag(ctx, board.DragResult{
		Source:      board.Location{Column: board.ColumnTodo, Index: 0},
		Destination: &board.Location{Column: board.ColumnRunning, Index: 0},
	}); err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	slot.Close()

	// A new session sees only the todo column.
	slot, err = OpenFileSlot(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer slot.Close()
	s = board.NewStore(NewTodoSlot(slot, "", 0, nil))
	s.Open(ctx)

	b := s.Board()
	if b.Len(board.ColumnRunning) != 0 {
		t.Errorf("Running len = %d, want 0 after reload", b.Len(board.ColumnRunning))
	}
	todo := b.Tasks(board.ColumnTodo)
	if len(todo) != 1 || todo[0].Content != "second" {
		t.Errorf("todo = %+v, want [second]", todo)
	}
}
