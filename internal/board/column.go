package board

import (
	"errors"
	"fmt"
	"strings"
)

// Column names a board column. The set is fixed.
type Column string

// Column constants
const (
	ColumnTodo      Column = "todo"
	ColumnRunning   Column = "Running"
	ColumnCompleted Column = "Completed"
)

// ErrUnknownColumn is returned when a column name is not one of the board columns.
var ErrUnknownColumn = errors.New("unknown column")

// Columns returns the board columns in display order.
func Columns() []Column {
	return []Column{ColumnTodo, ColumnRunning, ColumnCompleted}
}

// Valid reports whether c is one of the board columns.
func (c Column) Valid() bool {
	switch c {
	case ColumnTodo, ColumnRunning, ColumnCompleted:
		return true
	}
	return false
}

// Title returns the column name with its first letter upper-cased.
func (c Column) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseColumn matches s against the board columns, ignoring case.
func ParseColumn(s string) (Column, error) {
	s = strings.TrimSpace(s)
	for _, c := range Columns() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}
