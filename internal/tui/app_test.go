package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/storage"
)

func newTestModel(t *testing.T) (Model, *board.Store) {
	t.Helper()
	store := board.NewStore(storage.NewTodoSlot(storage.NewMemorySlot(), "", 0, nil))
	store.Open(context.Background())
	return newModel(context.Background(), store), store
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{"exactly minimum size", MinTerminalWidth, MinTerminalHeight, false},
		{"width too small", MinTerminalWidth - 1, MinTerminalHeight, true},
		{"height too small", MinTerminalWidth, MinTerminalHeight - 1, true},
		{"both dimensions too small", MinTerminalWidth - 10, MinTerminalHeight - 5, true},
		{"larger than minimum", 100, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			updated, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})

			view := updated.View()

			if tt.expectSmall {
				if !strings.Contains(view, "Terminal too small") {
					t.Error("expected view to contain 'Terminal too small'")
				}
				if !strings.Contains(view, "Minimum:") || !strings.Contains(view, "Current:") {
					t.Error("expected view to show minimum and current sizes")
				}
			} else {
				if strings.Contains(view, "Terminal too small") {
					t.Error("did not expect view to contain 'Terminal too small'")
				}
				if !strings.Contains(view, "Todo (0)") {
					t.Error("expected board columns in view")
				}
			}
		})
	}
}

func TestModel_renderTerminalTooSmall_ShowsDimensions(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 50
	m.height = 10

	view := m.renderTerminalTooSmall()

	if !strings.Contains(view, "60x15") {
		t.Error("expected minimum dimensions 60x15 to be shown")
	}
	if !strings.Contains(view, "50x10") {
		t.Error("expected current dimensions 50x10 to be shown")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

// press sends a key and drops the resulting command.
func press(m tea.Model, key tea.KeyMsg) tea.Model {
	m, _ = m.Update(key)
	return m
}

// deliver sends a key whose command yields a board message, and feeds that
// message back to the model.
func deliver(t *testing.T, m tea.Model, key tea.KeyMsg) tea.Model {
	t.Helper()
	m, cmd := m.Update(key)
	if cmd == nil {
		t.Fatalf("expected a command from %q", key.String())
	}
	m, _ = m.Update(cmd())
	return m
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_AddThenMoveToRunning(t *testing.T) {
	model, store := newTestModel(t)
	var m tea.Model = model
	m, _ = m.Update(tea.WindowSizeMsg{Width: 90, Height: 24})

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = typeText(m, "buy milk")
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	todo := store.Tasks(board.ColumnTodo)
	if len(todo) != 1 || todo[0].Content != "buy milk" {
		t.Fatalf("todo = %+v", todo)
	}

	// Grab, move one column right, drop.
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	b := store.Board()
	if b.Len(board.ColumnTodo) != 0 {
		t.Errorf("todo len = %d, want 0", b.Len(board.ColumnTodo))
	}
	running := b.Tasks(board.ColumnRunning)
	if len(running) != 1 || running[0].ID != todo[0].ID {
		t.Errorf("Running = %+v", running)
	}

	view := m.View()
	if !strings.Contains(view, "Running (1)") {
		t.Errorf("expected view to show Running (1):\n%s", view)
	}
}
