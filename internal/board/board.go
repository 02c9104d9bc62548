// Package board holds the task board state and the operations that mutate it.
package board

// Board is the ordered task sequence of every column.
// A task ID appears in at most one column.
type Board struct {
	columns map[Column][]Task
}

// NewBoard returns a board with every column empty.
func NewBoard() *Board {
	b := &Board{columns: make(map[Column][]Task, 3)}
	for _, c := range Columns() {
		b.columns[c] = []Task{}
	}
	return b
}

// Tasks returns a copy of the tasks in col, in display order.
func (b *Board) Tasks(col Column) []Task {
	tasks := b.columns[col]
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// Len returns the number of tasks in col.
func (b *Board) Len(col Column) int {
	return len(b.columns[col])
}

// Total returns the number of tasks across all columns.
func (b *Board) Total() int {
	n := 0
	for _, tasks := range b.columns {
		n += len(tasks)
	}
	return n
}

// Find returns the location of the task with the given ID.
func (b *Board) Find(id string) (Location, bool) {
	for _, c := range Columns() {
		for i, t := range b.columns[c] {
			if t.ID == id {
				return Location{Column: c, Index: i}, true
			}
		}
	}
	return Location{}, false
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{columns: make(map[Column][]Task, len(b.columns))}
	for c := range b.columns {
		out.columns[c] = b.Tasks(c)
	}
	return out
}

func (b *Board) set(col Column, tasks []Task) {
	b.columns[col] = tasks
}
