package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/tui/components"
	"github.com/pablasso/kanban/internal/tui/msgs"
	"github.com/pablasso/kanban/internal/tui/styles"
)

// BoardMode is the interaction mode of the board view.
type BoardMode int

const (
	// ModeBrowse moves the cursor between cards.
	ModeBrowse BoardMode = iota
	// ModeInput edits the new-task input.
	ModeInput
	// ModeGrab carries a card with the keyboard until it is dropped.
	ModeGrab
)

// Layout rows above the columns: title, input, message.
const (
	headerLines = 3
	columnGap   = 1
	// Rows between the top of a column box and its first card: border,
	// column title, blank line.
	cardOffset = 3
)

// BoardModel renders the three columns and turns key and mouse gestures
// into add and drag messages. It applies those messages to the store.
type BoardModel struct {
	store *board.Store
	ctx   context.Context

	mode   BoardMode
	column int // index into board.Columns()
	rows   [3]int

	// Keyboard drag: where the card came from and where it would land.
	grabSource board.Location
	grabTarget board.Location

	// Mouse drag: set between button press and release.
	pressed *board.Location
	hover   int // column under the pointer while dragging, -1 if none

	input textinput.Model

	message  string
	errorMsg string

	width  int
	height int
}

// NewBoardModel creates the board view over store. The store must already
// be open.
func NewBoardModel(ctx context.Context, store *board.Store) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Add a new task"
	ti.Prompt = "+ "
	ti.CharLimit = 500

	return BoardModel{
		store: store,
		ctx:   ctx,
		input: ti,
		hover: -1,
	}
}

// Init implements tea.Model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.inputWidth()
		return m, nil

	case msgs.AddTaskMsg:
		return m.handleAdd(msg), nil

	case msgs.DragEndMsg:
		return m.handleDragEnd(msg), nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeInput:
			return m.updateInput(msg)
		case ModeGrab:
			return m.updateGrab(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) updateBrowse(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a", "i", "n":
		m.mode = ModeInput
		m.clearMessages()
		cmd := m.input.Focus()
		return m, cmd
	case "left", "h":
		m.focusColumn(m.column - 1)
	case "right", "l":
		m.focusColumn(m.column + 1)
	case "up", "k":
		if m.rows[m.column] > 0 {
			m.rows[m.column]--
		}
	case "down", "j":
		if m.rows[m.column] < m.columnLen(m.column)-1 {
			m.rows[m.column]++
		}
	case " ", "enter":
		if m.columnLen(m.column) == 0 {
			return m, nil
		}
		m.clearMessages()
		m.mode = ModeGrab
		m.grabSource = board.Location{Column: m.currentColumn(), Index: m.rows[m.column]}
		m.grabTarget = m.grabSource
	}
	return m, nil
}

func (m BoardModel) updateInput(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		content := m.input.Value()
		m.input.SetValue("")
		return m, func() tea.Msg { return msgs.AddTaskMsg{Content: content} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) updateGrab(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	cols := board.Columns()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = ModeBrowse
		result := board.DragResult{Source: m.grabSource}
		return m, func() tea.Msg { return msgs.DragEndMsg{Result: result} }
	case " ", "enter":
		m.mode = ModeBrowse
		dst := m.grabTarget
		result := board.DragResult{Source: m.grabSource, Destination: &dst}
		return m, func() tea.Msg { return msgs.DragEndMsg{Result: result} }
	case "left", "h":
		if i := columnIndex(m.grabTarget.Column); i > 0 {
			m.retarget(cols[i-1], m.grabTarget.Index)
		}
	case "right", "l":
		if i := columnIndex(m.grabTarget.Column); i < len(cols)-1 {
			m.retarget(cols[i+1], m.grabTarget.Index)
		}
	case "up", "k":
		m.retarget(m.grabTarget.Column, m.grabTarget.Index-1)
	case "down", "j":
		m.retarget(m.grabTarget.Column, m.grabTarget.Index+1)
	}
	return m, nil
}

// retarget moves the keyboard drop target, keeping the index within the
// slots available in col once the grabbed card has left its column.
func (m *BoardModel) retarget(col board.Column, index int) {
	slots := m.store.Board().Len(col)
	if col == m.grabSource.Column {
		slots--
	}
	m.grabTarget = board.Location{Column: col, Index: clampIndex(index, slots)}
}

func (m BoardModel) handleMouse(msg tea.MouseMsg) (BoardModel, tea.Cmd) {
	if m.mode == ModeGrab {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		loc, ok := m.CardAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.clearMessages()
		m.pressed = &loc
		m.column = columnIndex(loc.Column)
		m.rows[m.column] = loc.Index
		m.hover = m.column

	case tea.MouseActionMotion:
		if m.pressed != nil {
			m.hover = -1
			if dst, ok := m.DropTargetAt(msg.X, msg.Y); ok {
				m.hover = columnIndex(dst.Column)
			}
		}

	case tea.MouseActionRelease:
		if m.pressed == nil {
			return m, nil
		}
		result := board.DragResult{Source: *m.pressed}
		m.pressed = nil
		m.hover = -1
		if dst, ok := m.DropTargetAt(msg.X, msg.Y); ok {
			if dst == result.Source {
				// Released where it was pressed: a click, not a move.
				return m, nil
			}
			result.Destination = &dst
		}
		return m, func() tea.Msg { return msgs.DragEndMsg{Result: result} }
	}
	return m, nil
}

func (m BoardModel) handleAdd(msg msgs.AddTaskMsg) BoardModel {
	task, ok, err := m.store.Add(m.ctx, msg.Content)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Task added but not saved: %v", err)
		return m
	}
	if !ok {
		return m
	}
	m.errorMsg = ""
	m.message = fmt.Sprintf("Added %q", task.Content)
	return m
}

func (m BoardModel) handleDragEnd(msg msgs.DragEndMsg) BoardModel {
	r := msg.Result
	changed, err := m.store.ApplyDrag(m.ctx, r)
	if err != nil && !changed {
		if errors.Is(err, board.ErrIndexOutOfRange) {
			m.errorMsg = "That card is no longer there"
		} else {
			m.errorMsg = err.Error()
		}
		return m
	}
	if !changed {
		m.message = "Move cancelled"
		return m
	}

	dst := *r.Destination
	src := columnIndex(r.Source.Column)
	m.rows[src] = clampIndex(m.rows[src], m.columnLen(src)-1)
	m.column = columnIndex(dst.Column)
	m.rows[m.column] = clampIndex(dst.Index, m.columnLen(m.column)-1)

	if err != nil {
		m.errorMsg = fmt.Sprintf("Moved but not saved: %v", err)
		return m
	}
	m.errorMsg = ""
	m.message = fmt.Sprintf("Moved to %s", dst.Column.Title())
	return m
}

// CardAt returns the card under screen cell (x, y).
func (m BoardModel) CardAt(x, y int) (board.Location, bool) {
	col, ok := m.columnAtX(x)
	if !ok || !m.inColumnRows(y) {
		return board.Location{}, false
	}
	row := y - headerLines - cardOffset
	if row < 0 || row >= m.visibleCards() {
		return board.Location{}, false
	}
	index := row + m.scrollOffset(col)
	if index >= m.columnLen(col) {
		return board.Location{}, false
	}
	return board.Location{Column: board.Columns()[col], Index: index}, true
}

// DropTargetAt returns where a card released at (x, y) would land. Any
// cell inside a column box is a target; the index is the card row under
// the pointer, clamped to the column.
func (m BoardModel) DropTargetAt(x, y int) (board.Location, bool) {
	col, ok := m.columnAtX(x)
	if !ok || !m.inColumnRows(y) {
		return board.Location{}, false
	}
	index := y - headerLines - cardOffset + m.scrollOffset(col)
	return board.Location{
		Column: board.Columns()[col],
		Index:  clampIndex(index, m.columnLen(col)),
	}, true
}

func (m BoardModel) columnAtX(x int) (int, bool) {
	outer := m.columnOuterWidth()
	for c := range board.Columns() {
		left := c * (outer + columnGap)
		if x >= left && x < left+outer {
			return c, true
		}
	}
	return 0, false
}

func (m BoardModel) inColumnRows(y int) bool {
	return y >= headerLines && y < headerLines+m.columnInnerHeight()+2
}

// View implements tea.Model.
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("K A N B A N")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")

	if m.mode == ModeInput {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(styles.SubtleStyle.Render("Press a to add a task"))
	}
	b.WriteString("\n")

	switch {
	case m.errorMsg != "":
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
	case m.message != "":
		b.WriteString(styles.SuccessStyle.Render(m.message))
	}
	b.WriteString("\n")

	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, m.statusItems()))

	return b.String()
}

func (m BoardModel) renderColumns() string {
	snapshot := m.store.Board()
	var moved string
	if m.mode == ModeGrab {
		// Preview where the card would land.
		if tasks := snapshot.Tasks(m.grabSource.Column); m.grabSource.Index < len(tasks) {
			moved = tasks[m.grabSource.Index].ID
		}
		dst := m.grabTarget
		if _, err := board.Resolve(snapshot, board.DragResult{Source: m.grabSource, Destination: &dst}); err != nil {
			moved = ""
		}
	}

	inner := m.columnOuterWidth() - 2
	textWidth := inner - 2
	visible := m.visibleCards()

	var boxes []string
	for c, col := range board.Columns() {
		tasks := snapshot.Tasks(col)
		offset := m.scrollOffset(c)
		if moved != "" {
			offset = 0
			if loc, ok := snapshot.Find(moved); ok && loc.Column == col && loc.Index >= visible {
				offset = loc.Index - visible + 1
			}
		}

		header := fmt.Sprintf("%s (%d)", col.Title(), len(tasks))
		lines := []string{styles.TitleStyle.Render(truncate(header, textWidth)), ""}

		end := min(len(tasks), offset+visible)
		for i := offset; i < end; i++ {
			lines = append(lines, m.renderCard(c, i, tasks[i], moved, textWidth))
		}
		if len(tasks) == 0 {
			lines = append(lines, styles.SubtleStyle.Render(truncate("(empty)", textWidth)))
		}

		style := styles.ColumnStyle
		if c == m.hover || (m.pressed == nil && c == m.column && m.mode != ModeInput) {
			style = styles.ActiveColumnStyle
		}
		boxes = append(boxes, style.Width(inner).Height(m.columnInnerHeight()).Render(strings.Join(lines, "\n")))

		if c < len(board.Columns())-1 {
			boxes = append(boxes, strings.Repeat(" ", columnGap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m BoardModel) renderCard(col, index int, task board.Task, moved string, width int) string {
	text := truncate(task.Content, width-2)
	switch {
	case moved != "" && task.ID == moved:
		return styles.DraggingStyle.Render("◆ " + text)
	case moved == "" && col == m.column && index == m.rows[col] && m.mode != ModeInput:
		return styles.SelectedStyle.Render("▸ " + text)
	default:
		return "  " + text
	}
}

func (m BoardModel) statusItems() []string {
	switch m.mode {
	case ModeInput:
		return []string{"Enter Add", "Esc Done"}
	case ModeGrab:
		return []string{"←→↑↓ Move", "Enter Drop", "Esc Cancel"}
	default:
		return []string{"←→↑↓ Navigate", "Space Grab", "a Add", "Mouse Drag", "q Quit"}
	}
}

// scrollOffset is the index of the first visible card in column c. Only
// the focused column scrolls, to keep its cursor on screen.
func (m BoardModel) scrollOffset(c int) int {
	if c != m.column {
		return 0
	}
	visible := m.visibleCards()
	if visible <= 0 || m.rows[c] < visible {
		return 0
	}
	return m.rows[c] - visible + 1
}

func (m BoardModel) columnOuterWidth() int {
	n := len(board.Columns())
	return (m.width - columnGap*(n-1)) / n
}

func (m BoardModel) columnInnerHeight() int {
	// Header lines, status bar and the two border rows.
	h := m.height - headerLines - 1 - 2
	if h < 0 {
		return 0
	}
	return h
}

func (m BoardModel) visibleCards() int {
	return max(m.columnInnerHeight()-(cardOffset-1), 0)
}

func (m BoardModel) inputWidth() int {
	return max(m.width-len(m.input.Prompt)-1, 1)
}

func (m *BoardModel) focusColumn(c int) {
	if c < 0 || c >= len(board.Columns()) {
		return
	}
	m.column = c
	m.rows[c] = clampIndex(m.rows[c], m.columnLen(c)-1)
}

func (m *BoardModel) clearMessages() {
	m.message = ""
	m.errorMsg = ""
}

func (m BoardModel) currentColumn() board.Column {
	return board.Columns()[m.column]
}

func (m BoardModel) columnLen(c int) int {
	return m.store.Board().Len(board.Columns()[c])
}

// SetSize updates the model dimensions.
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = m.inputWidth()
}

// Mode returns the current interaction mode.
func (m BoardModel) Mode() BoardMode {
	return m.mode
}

// Cursor returns the focused card location.
func (m BoardModel) Cursor() board.Location {
	return board.Location{Column: m.currentColumn(), Index: m.rows[m.column]}
}

// GrabTarget returns where a keyboard-grabbed card would be dropped.
func (m BoardModel) GrabTarget() board.Location {
	return m.grabTarget
}

// Message returns the last informational message.
func (m BoardModel) Message() string {
	return m.message
}

// Error returns the current error message.
func (m BoardModel) Error() string {
	return m.errorMsg
}

func columnIndex(col board.Column) int {
	for i, c := range board.Columns() {
		if c == col {
			return i
		}
	}
	return 0
}

// clampIndex bounds i to [0, n], treating negative n as 0.
func clampIndex(i, n int) int {
	if n < 0 {
		n = 0
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Inline(true).MaxWidth(width).Render(s)
}
