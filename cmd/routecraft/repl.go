package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/routecraft/routecraft/internal/replterm"
	"github.com/routecraft/routecraft/pkg/routecraft"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// runREPL starts an interactive line-editing session over the registered
// endpoint table, dispatching each entered line through the same
// Resolve path as a single-shot invocation.
func runREPL(table *routecraft.EndpointTable, registry *routecraft.ConverterRegistry) error {
	sess, err := replterm.Open(promptStyle.Render("routecraft> "))
	if err != nil {
		return err
	}
	defer sess.Close()

	history := newReplHistory()
	// golang.org/x/term.Terminal only tracks history for the current
	// session (arrow-key navigation of lines entered since ReadLine
	// started); Load merely recovers prior lines for the :history
	// command below, it cannot seed the in-memory arrow-key ring.
	history.Load()

	sess.Terminal.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' {
			return "", 0, false
		}
		cands := routecraft.Complete(line[:pos], table)
		if len(cands) != 1 {
			return "", 0, false
		}
		it := routecraft.TokenizeInput(line[:pos])
		insert := cands[0].Text
		if it.PartialWord != "" {
			insert = insert[len(it.PartialWord):]
		}
		newLine := line[:pos] + insert + " " + line[pos:]
		return newLine, pos + len(insert) + 1, true
	}

	fmt.Fprintln(sess.Terminal, dimStyle.Render("Type :help for commands, Tab for completion, Ctrl+D to exit."))

	for {
		line, err := sess.Terminal.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sess.Terminal, "Goodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		history.Add(line)

		if line == ":quit" || line == ":exit" {
			fmt.Fprintln(sess.Terminal, "Goodbye!")
			return nil
		}
		if line == ":help" {
			fmt.Fprintln(sess.Terminal, dimStyle.Render("Enter a command line to dispatch it; :history to list recent lines; :quit to exit."))
			continue
		}
		if line == ":history" {
			for i, entry := range history.entries {
				fmt.Fprintln(sess.Terminal, dimStyle.Render(fmt.Sprintf("  %d: %s", i+1, entry)))
			}
			continue
		}

		dispatchAndPrint(sess.Terminal, table, registry, strings.Fields(line))
	}
}

func dispatchAndPrint(w io.Writer, table *routecraft.EndpointTable, registry *routecraft.ConverterRegistry, args []string) {
	result, noMatch := routecraft.Resolve(args, table, registry)
	if noMatch != nil {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("no match: %s", noMatch.Error())))
		slog.Debug("dispatch failed", "args", args, "reason", noMatch.Reason.String())
		return
	}
	fmt.Fprintln(w, resultStyle.Render(fmt.Sprintf("=> matched %q", result.Endpoint.Pattern)))
	for k, v := range result.Bound.Values {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("   %s = %v", k, v)))
	}
}
