package board

// Task is a single card on the board. Tasks are never edited in place,
// only relocated between and within columns.
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
