// Package logging wires the standard logger and Bubble Tea's debug log to
// an optional file. TUIs cannot log to the terminal they own, so with no
// file configured everything is discarded.
package logging

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Setup configures logging. With an empty filename, log output is discarded.
// Otherwise both the stdlib logger and Bubble Tea append to the file. The
// returned cleanup closes the open handles.
func Setup(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		tf.Close()
		f.Close()
	}, nil
}
