// Package msgs defines shared message types for the TUI.
package msgs

import "github.com/pablasso/kanban/internal/board"

// AddTaskMsg is sent when the task input is submitted.
type AddTaskMsg struct {
	Content string
}

// DragEndMsg is sent when a drag gesture finishes, by keyboard or mouse.
// A nil Result.Destination means the drag was cancelled.
type DragEndMsg struct {
	Result board.DragResult
}
