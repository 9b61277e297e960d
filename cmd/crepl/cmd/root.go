package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/crepl"
	"github.com/zephyrtronium/crepl/internal/config"
	"github.com/zephyrtronium/crepl/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "crepl",
	Short: "Interactive calculator",
	Long: `crepl evaluates one arithmetic statement per line.

Statements are expressions with + - * / and parentheses over integers and
decimals, or assignments to single-letter variables:

  > a = 4
  4
  > a / (a + 3)
  0.571429`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.log.Sync()
		return repl(cmd.InOrStdin(), cmd.OutOrStdout(), s)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./crepl.yaml or ~/.config/crepl/crepl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every evaluation")
}

// session is what a command needs to evaluate lines.
type session struct {
	cfg *config.Config
	log *zap.Logger
	ev  *crepl.Evaluator
}

func newSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log = log.With(zap.String("session", uuid.NewString()))
	opts := []crepl.Option{crepl.WithLogger(log)}
	if cfg.WhitespaceRuns {
		opts = append(opts, crepl.SkipWhitespaceRuns())
	}
	return &session{cfg: cfg, log: log, ev: crepl.New(opts...)}, nil
}
