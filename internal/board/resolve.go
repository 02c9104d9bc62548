package board

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a drag source does not point at a task.
var ErrIndexOutOfRange = errors.New("index out of range")

// Location addresses a slot in a column.
type Location struct {
	Column Column `json:"column"`
	Index  int    `json:"index"`
}

// DragResult describes a finished drag gesture. A nil Destination means
// the card was dropped outside every column.
type DragResult struct {
	Source      Location  `json:"source"`
	Destination *Location `json:"destination,omitempty"`
}

// Cancelled reports whether the drag has no destination.
func (r DragResult) Cancelled() bool {
	return r.Destination == nil
}

// Resolve applies r to b and returns the columns it modified.
// A cancelled drag modifies nothing. The source index must point at a task;
// the destination index is clamped into the destination column.
func Resolve(b *Board, r DragResult) ([]Column, error) {
	if r.Cancelled() {
		return nil, nil
	}
	src, dst := r.Source, *r.Destination
	if !src.Column.Valid() {
		return nil, fmt.Errorf("source %w: %q", ErrUnknownColumn, src.Column)
	}
	if !dst.Column.Valid() {
		return nil, fmt.Errorf("destination %w: %q", ErrUnknownColumn, dst.Column)
	}

	srcTasks := b.Tasks(src.Column)
	if src.Index < 0 || src.Index >= len(srcTasks) {
		return nil, fmt.Errorf("source %w: %s[%d] has %d tasks", ErrIndexOutOfRange, src.Column, src.Index, len(srcTasks))
	}

	moved := srcTasks[src.Index]
	srcTasks = removeAt(srcTasks, src.Index)

	if src.Column == dst.Column {
		b.set(src.Column, insertAt(srcTasks, clamp(dst.Index, len(srcTasks)), moved))
		return []Column{src.Column}, nil
	}

	dstTasks := b.Tasks(dst.Column)
	b.set(src.Column, srcTasks)
	b.set(dst.Column, insertAt(dstTasks, clamp(dst.Index, len(dstTasks)), moved))
	return []Column{src.Column, dst.Column}, nil
}

func removeAt(tasks []Task, i int) []Task {
	return append(tasks[:i], tasks[i+1:]...)
}

func insertAt(tasks []Task, i int, t Task) []Task {
	tasks = append(tasks, Task{})
	copy(tasks[i+1:], tasks[i:])
	tasks[i] = t
	return tasks
}

// clamp bounds i to [0, n].
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
