package main

import (
	"os"

	"github.com/pablasso/kanban/internal/cli"
)

func main() {
	// With no args the root command opens the board TUI.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
