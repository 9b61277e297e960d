package crepl

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Evaluator evaluates statements against a persistent set of variables. It is
// safe to use an Evaluator concurrently; evaluations are serialized.
type Evaluator struct {
	mu   sync.Mutex
	vars Store
	last *Error
	runs bool
	log  *zap.Logger
}

// New creates an Evaluator with every variable absent.
func New(opts ...Option) *Evaluator {
	var c evalcfg
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	ev := Evaluator{runs: c.runs, log: c.log}
	if ev.log == nil {
		ev.log = zap.NewNop()
	}
	if c.vars != nil {
		ev.vars = *c.vars.Clone()
	}
	return &ev
}

// Eval evaluates one line. Only the text up to the first newline is
// evaluated; a missing newline is implied. If the line is an assignment, the
// result is the assigned value. If evaluation fails, the error is an *Error,
// no variable is changed, and LastError reports it until the next call.
func (ev *Evaluator) Eval(line string) (Value, error) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	v, err := ev.eval(line)
	ev.last = err
	if err != nil {
		ev.log.Debug("evaluation failed",
			zap.String("line", strings.TrimSuffix(line, "\n")),
			zap.Stringer("kind", err.Kind),
			zap.Int("offset", err.Offset),
		)
		return Value{}, err
	}
	ev.log.Debug("evaluated",
		zap.String("line", strings.TrimSuffix(line, "\n")),
		zap.Stringer("kind", v.Kind()),
		zap.Stringer("result", v),
	)
	return v, nil
}

func (ev *Evaluator) eval(line string) (Value, *Error) {
	if line == "" {
		return Value{}, &Error{Kind: MalformedInput, Found: terminator}
	}
	if k := strings.IndexByte(line, terminator); k >= 0 {
		line = line[:k+1]
	} else {
		line += string(terminator)
	}
	// Work on a copy of the variables so that a failed assignment changes
	// nothing. The store is small enough that copying it is free.
	vars := ev.vars
	e := evaluation{cursor: newCursor(line, ev.runs), vars: &vars}
	v, err := e.run()
	if err != nil {
		return Value{}, err
	}
	ev.vars = vars
	return v, nil
}

// Evaluate evaluates one line and renders the result. On failure, the result
// is empty and ok is false; LastError describes the failure.
func (ev *Evaluator) Evaluate(line string) (result string, ok bool) {
	v, err := ev.Eval(line)
	if err != nil {
		return "", false
	}
	return v.String(), true
}

// LastError returns the message and offset of the error from the last call to
// Eval or Evaluate. If that call succeeded, the message is empty and the
// offset is 0.
func (ev *Evaluator) LastError() (msg string, offset int) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if ev.last == nil {
		return "", 0
	}
	return ev.last.Message(), ev.last.Offset
}

// Err returns the error from the last evaluation, or nil if it succeeded.
func (ev *Evaluator) Err() error {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if ev.last == nil {
		return nil
	}
	return ev.last
}

// Lookup returns the value of a variable.
func (ev *Evaluator) Lookup(name byte) Value {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.vars.Lookup(name)
}

// Vars lists the assigned variables in alphabetical order.
func (ev *Evaluator) Vars() []Var {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.vars.Vars()
}

// Reset makes every variable absent and clears the last error.
func (ev *Evaluator) Reset() {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.vars.Reset()
	ev.last = nil
}

// std backs the package-level functions.
var std = New()

// Evaluate evaluates a line with the default Evaluator.
func Evaluate(line string) (result string, ok bool) {
	return std.Evaluate(line)
}

// LastError returns the last error from the default Evaluator.
func LastError() (msg string, offset int) {
	return std.LastError()
}

// Default returns the Evaluator used by the package-level functions.
func Default() *Evaluator {
	return std
}
