package components

import (
	"strings"
	"testing"
)

func TestStatusBar_Render_SingleItem(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, []string{"q Quit"})

	if !strings.Contains(result, "q Quit") {
		t.Errorf("expected result to contain 'q Quit', got: %s", result)
	}
}

func TestStatusBar_Render_MultipleItems(t *testing.T) {
	sb := NewStatusBar()
	items := []string{"Space Grab", "a Add", "q Quit"}
	result := sb.Render(60, items)

	if !strings.Contains(result, "Space Grab • a Add • q Quit") {
		t.Errorf("expected items joined with ' • ', got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, []string{})

	if strings.TrimSpace(result) != "" {
		t.Errorf("expected blank status bar, got: %q", result)
	}
}

func TestStatusBar_Render_NarrowWidthStaysOneLine(t *testing.T) {
	sb := NewStatusBar()
	items := []string{"←→↑↓ Navigate", "Space Grab", "a Add", "Mouse Drag", "q Quit"}
	result := sb.Render(20, items)

	if result == "" {
		t.Fatal("expected non-empty result even with narrow width")
	}
	if strings.Contains(result, "\n") {
		t.Errorf("expected a single line, got: %q", result)
	}
}
