// Package logger sends log output to a file so it does not corrupt the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// Init directs the standard logger to path, creating its directory when
// needed. The returned closer flushes and closes the file.
func Init(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := tea.LogToFile(path, "todo-tui")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetFlags(log.Ldate | log.Ltime)
	return f, nil
}

// Discard silences the standard logger
func Discard() {
	log.SetOutput(io.Discard)
}

func Info(format string, v ...interface{}) {
	log.Output(2, "[INFO] "+fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	log.Output(2, "[ERROR] "+fmt.Sprintf(format, v...))
}
