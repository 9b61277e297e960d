package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// styles render the two lines of an error report.
type styles struct {
	caret, msg func(string) string
}

func newStyles(out io.Writer, color bool) styles {
	if !color {
		plain := func(s string) string { return s }
		return styles{plain, plain}
	}
	r := lipgloss.NewRenderer(out)
	caret := r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	msg := r.NewStyle().Foreground(lipgloss.Color("9"))
	return styles{
		caret: func(s string) string { return caret.Render(s) },
		msg:   func(s string) string { return msg.Render(s) },
	}
}

// repl reads lines from in until EOF and prints each result or error to out.
// Errors point at the failing character of the line the user typed after the
// prompt.
func repl(in io.Reader, out io.Writer, s *session) error {
	if s.cfg.Banner {
		fmt.Fprintf(out, "crepl %s, one statement per line, EOF to quit\n", Version)
	}
	st := newStyles(out, s.cfg.Color)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, s.cfg.Prompt)
		if !sc.Scan() {
			break
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if r, ok := s.ev.Evaluate(line + "\n"); ok {
			fmt.Fprintln(out, r)
			continue
		}
		msg, off := s.ev.LastError()
		fmt.Fprintln(out, st.caret(strings.Repeat(" ", len(s.cfg.Prompt)+off)+"^"))
		fmt.Fprintln(out, st.msg("Error: "+msg))
	}
	fmt.Fprintln(out)
	if err := sc.Err(); err != nil {
		s.log.Error("reading input", zap.Error(err))
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
