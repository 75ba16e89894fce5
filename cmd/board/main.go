// Command board runs the kanban board in the terminal.
//
// Usage:
//
//	board [--config path] [--seed file.db] [--open KB-298 [--column in-progress]]
//	board seed export <file.db>
//	board seed show <file.db>
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
