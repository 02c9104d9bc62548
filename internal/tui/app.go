// Package tui runs the terminal board.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/tui/styles"
	"github.com/pablasso/kanban/internal/tui/views"
)

// Minimum terminal dimensions for the three columns to fit.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// Model is the main Bubble Tea model.
type Model struct {
	board  views.BoardModel
	width  int
	height int
}

// Run starts the TUI over an open store and blocks until the user quits.
func Run(ctx context.Context, store *board.Store) error {
	p := tea.NewProgram(
		newModel(ctx, store),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		// A signal cancelling ctx is a normal way to leave.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run board: %w", err)
	}
	return nil
}

func newModel(ctx context.Context, store *board.Store) Model {
	return Model{board: views.NewBoardModel(ctx, store)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.board.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}
	return m.board.View()
}

func (m Model) renderTerminalTooSmall() string {
	lines := []string{
		styles.ErrorStyle.Render("Terminal too small"),
		"",
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
