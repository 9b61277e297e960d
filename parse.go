package crepl

import (
	"errors"
	"strconv"
)

// Statement = letter '=' Expr | letter Rest | Expr
// Rest = { ('*' | '/') Factor } { ('+' | '-') Term }
// Expr = [ '+' | '-' ] Term { ('+' | '-') Term }
// Term = Factor { ('*' | '/') Factor }
// Factor = '(' Expr ')' | letter | Number
// Number = digit { digit | '.' }
//
// Each production returns the value of what it parsed. There is no syntax
// tree.

// evaluation holds the state of a single evaluation.
type evaluation struct {
	*cursor
	vars *Store
	// undef and undefpos record the last absent variable read, so that an
	// absent statement result can name it.
	undef    byte
	undefpos int
}

// bailout carries an *Error up through every pending production at once.
type bailout struct {
	err *Error
}

// run evaluates a statement. src must be terminated.
func (e *evaluation) run() (v Value, err *Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		v, err = Value{}, b.err
	}()
	return e.statement(), nil
}

// fail aborts the evaluation with an error at the cursor.
func (e *evaluation) fail(kind ErrorKind) {
	e.failAt(kind, e.pos)
}

// failAt aborts the evaluation with an error at an earlier offset.
func (e *evaluation) failAt(kind ErrorKind, pos int) {
	panic(bailout{&Error{Kind: kind, Offset: pos, Found: e.src[pos]}})
}

// check aborts the evaluation if an operator at pos returned an error.
func (e *evaluation) check(err error, pos int) {
	if err != nil {
		e.failAt(kindOf(err), pos)
	}
}

// match consumes the character x and one following blank.
func (e *evaluation) match(x byte) {
	if e.look != x {
		panic(bailout{&Error{Kind: MatchFailure, Offset: e.pos, Found: e.look, Want: x}})
	}
	e.advance()
	e.skipWhite()
}

// end requires that the statement has consumed the whole line.
func (e *evaluation) end() {
	if e.look != terminator {
		panic(bailout{&Error{Kind: MatchFailure, Offset: e.pos, Found: e.look, Want: terminator}})
	}
}

// present aborts the evaluation if v is absent, which can only happen when a
// statement's value is an unassigned variable.
func (e *evaluation) present(v Value) Value {
	if v.kind == Absent {
		panic(bailout{&Error{Kind: OperandMissing, Offset: e.undefpos, Found: e.src[e.undefpos], Name: e.undef}})
	}
	return v
}

func (e *evaluation) statement() Value {
	if !isLetter(e.look) {
		v := e.expression()
		e.end()
		return e.present(v)
	}
	name, at := e.look, e.pos
	e.match(name)
	e.skipWhite()
	if e.look == '=' {
		e.match('=')
		e.skipWhite()
		v := e.expression()
		e.end()
		e.vars.Set(name, e.present(v))
		return v
	}
	// Not an assignment, so the letter was the first factor of an expression.
	v := e.variable(name, at)
	v = e.sum(e.product(v))
	e.end()
	return e.present(v)
}

func (e *evaluation) expression() Value {
	var v Value
	if isAddop(e.look) {
		// Unary sign: -x is 0 - x.
		v = Int(0)
	} else {
		v = e.term()
	}
	return e.sum(v)
}

// sum folds terms into v while the lookahead is + or -.
func (e *evaluation) sum(v Value) Value {
	for isAddop(e.look) {
		op, at := e.look, e.pos
		e.match(op)
		r := e.term()
		var err error
		if op == '+' {
			v, err = v.Add(r)
		} else {
			v, err = v.Sub(r)
		}
		e.check(err, at)
	}
	return v
}

func (e *evaluation) term() Value {
	return e.product(e.factor())
}

// product folds factors into v while the lookahead is * or /.
func (e *evaluation) product(v Value) Value {
	for isMulop(e.look) {
		op, at := e.look, e.pos
		e.match(op)
		r := e.factor()
		var err error
		if op == '*' {
			v, err = v.Mul(r)
		} else {
			v, err = v.Quo(r)
		}
		e.check(err, at)
	}
	return v
}

func (e *evaluation) factor() Value {
	switch {
	case e.look == '(':
		e.match('(')
		v := e.expression()
		e.match(')')
		return v
	case isLetter(e.look):
		name, at := e.look, e.pos
		e.advance()
		e.skipWhite()
		return e.variable(name, at)
	default:
		return e.number()
	}
}

// variable reads a variable that appeared at offset at. Absent values are
// returned as they are; the operator that uses them reports the error.
func (e *evaluation) variable(name byte, at int) Value {
	v := e.vars.Lookup(name)
	if v.kind == Absent {
		e.undef, e.undefpos = name, at
	}
	return v
}

func (e *evaluation) number() Value {
	if !isDigit(e.look) {
		e.fail(NumericValueExpected)
	}
	start := e.pos
	dot := false
	for isDigit(e.look) || e.look == '.' {
		if e.look == '.' {
			if dot {
				e.fail(MalformedFloat)
			}
			dot = true
		}
		e.advance()
	}
	text := e.src[start:e.pos]
	e.skipWhite()
	if dot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			e.numerr(err, start)
		}
		return Float(f)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		e.numerr(err, start)
	}
	return Int(i)
}

// numerr reports a conversion error for a literal starting at pos. The
// scanner only admits well-formed literals, so the only possible failure is
// range.
func (e *evaluation) numerr(err error, pos int) {
	if errors.Is(err, strconv.ErrRange) {
		e.failAt(NumberOutOfRange, pos)
	}
	panic("crepl: unexpected number conversion error: " + err.Error())
}
