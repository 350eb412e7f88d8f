// Package replterm puts stdin into raw mode and wraps it in a
// golang.org/x/term line editor so the REPL gets arrow-key history and
// tab completion without pulling in a full TUI framework.
package replterm

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Session owns the raw-mode terminal state for the lifetime of a REPL
// run. Close must be called to restore the terminal, typically via
// defer immediately after Open succeeds.
type Session struct {
	fd       int
	oldState *term.State
	Terminal *term.Terminal

	resizeCh   chan os.Signal
	resizeDone chan struct{}
}

// Open switches stdin into raw mode and returns a Session wrapping a
// *term.Terminal over stdin/stdout that shows prompt. The caller sets
// Terminal's AutoCompleteCallback before calling ReadLine.
func Open(prompt string) (*Session, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("replterm: stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("replterm: setting raw mode: %w", err)
	}

	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	s := &Session{
		fd:         fd,
		oldState:   oldState,
		Terminal:   term.NewTerminal(rw, prompt),
		resizeCh:   make(chan os.Signal, 1),
		resizeDone: make(chan struct{}),
	}

	s.watchResize()
	return s, nil
}

// watchResize keeps the terminal's line-wrap width in sync with the
// controlling window so the line editor re-wraps correctly after a
// resize instead of drawing against a stale width.
func (s *Session) watchResize() {
	signal.Notify(s.resizeCh, syscall.SIGWINCH)
	go func() {
		defer close(s.resizeDone)
		for range s.resizeCh {
			w, _, err := term.GetSize(s.fd)
			if err == nil && w > 0 {
				s.Terminal.SetSize(w, 0)
			}
		}
	}()
}

// Close restores the terminal to its original (cooked) mode. Safe to
// call once; a second call is a no-op error the caller should ignore.
func (s *Session) Close() error {
	if s.oldState == nil {
		return fmt.Errorf("replterm: session already closed")
	}
	signal.Stop(s.resizeCh)
	close(s.resizeCh)
	<-s.resizeDone
	err := term.Restore(s.fd, s.oldState)
	s.oldState = nil
	return err
}
