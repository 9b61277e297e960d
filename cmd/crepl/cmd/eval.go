package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/crepl"
)

var (
	inname   string
	showVars bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [statement...]",
	Short: "Evaluate statements and exit",
	Long: `Evaluate each argument as a statement, in order, sharing variables.
With --in, lines of a file are evaluated first; "-" reads stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.log.Sync()
		var lines []string
		if inname != "" {
			lines, err = readLines(inname, cmd.InOrStdin())
			if err != nil {
				return err
			}
		}
		lines = append(lines, args...)
		failed := evalAll(cmd.OutOrStdout(), cmd.ErrOrStderr(), s.ev, lines)
		if showVars {
			printVars(cmd.OutOrStdout(), s.ev.Vars())
		}
		if failed > 0 {
			s.log.Warn("evaluation failures", zap.Int("failed", failed), zap.Int("total", len(lines)))
			return fmt.Errorf("%d of %d statements failed", failed, len(lines))
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVar(&inname, "in", "", "file of statements, one per line")
	evalCmd.Flags().BoolVar(&showVars, "vars", false, "print assigned variables at the end")
	rootCmd.AddCommand(evalCmd)
}

// evalAll evaluates lines in order, writing results to out and errors to errw.
// Empty lines are skipped. Returns the number of failed lines.
func evalAll(out, errw io.Writer, ev *crepl.Evaluator, lines []string) int {
	failed := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		r, ok := ev.Evaluate(line + "\n")
		if ok {
			fmt.Fprintln(out, r)
			continue
		}
		failed++
		msg, off := ev.LastError()
		fmt.Fprintf(errw, "%q: offset %d: %s\n", line, off, msg)
	}
	return failed
}

func printVars(out io.Writer, vars []crepl.Var) {
	for _, v := range vars {
		fmt.Fprintf(out, "%c = %v\n", v.Name, v.Value)
	}
}

// readLines reads a file of statements. "-" is std.
func readLines(name string, std io.Reader) ([]string, error) {
	in := std
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	var lines []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return lines, nil
}
