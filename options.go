package crepl

import "go.uber.org/zap"

// Option is an option for creating an Evaluator.
type Option interface {
	option(evalcfg) evalcfg
}

// evalcfg holds the settings an Evaluator is created with.
type evalcfg struct {
	// log receives a debug entry for every evaluation.
	log *zap.Logger
	// runs makes whitespace skipping consume runs of blanks.
	runs bool
	// vars is the initial variable store, copied into the Evaluator.
	vars *Store
}

type (
	logopt  struct{ log *zap.Logger }
	runsopt bool
	varsopt struct{ vars *Store }
)

// WithLogger sets the logger an Evaluator reports evaluations to. A nil logger
// disables logging, which is also the default.
func WithLogger(log *zap.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c evalcfg) evalcfg {
	c.log = o.log
	return c
}

// SkipWhitespaceRuns makes the Evaluator skip any number of spaces and tabs
// between tokens. By default, exactly one blank is skipped wherever blanks
// are allowed, so "1  + 2" is an error.
func SkipWhitespaceRuns() Option {
	return runsopt(true)
}

func (o runsopt) option(c evalcfg) evalcfg {
	c.runs = bool(o)
	return c
}

// WithVars starts the Evaluator with a copy of a variable store.
func WithVars(vars *Store) Option {
	return varsopt{vars}
}

func (o varsopt) option(c evalcfg) evalcfg {
	c.vars = o.vars
	return c
}
