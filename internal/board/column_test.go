package board

import (
	"errors"
	"testing"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		input   string
		want    Column
		wantErr bool
	}{
		{"todo", ColumnTodo, false},
		{"TODO", ColumnTodo, false},
		{"running", ColumnRunning, false},
		{" Completed ", ColumnCompleted, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseColumn(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownColumn) {
					t.Fatalf("expected ErrUnknownColumn, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseColumn(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestColumn_Title(t *testing.T) {
	tests := []struct {
		col  Column
		want string
	}{
		{ColumnTodo, "Todo"},
		{ColumnRunning, "Running"},
		{ColumnCompleted, "Completed"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := tc.col.Title(); got != tc.want {
			t.Errorf("%q.Title() = %q, want %q", tc.col, got, tc.want)
		}
	}
}

func TestColumns_Order(t *testing.T) {
	cols := Columns()
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if cols[0] != ColumnTodo || cols[1] != ColumnRunning || cols[2] != ColumnCompleted {
		t.Errorf("unexpected column order: %v", cols)
	}
}
