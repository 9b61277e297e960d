package crepl

import (
	"errors"
	"strconv"
)

// Kind is the type of a Value.
type Kind int8

const (
	// Absent is the kind of the zero Value. Unassigned variables are absent.
	Absent Kind = iota
	// Integer is a signed 64-bit integer.
	Integer
	// Real is a float64.
	Real
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "Absent"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating a statement or the content of a variable.
// The zero Value is absent.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: Integer, i: i}
}

// Float returns a real value.
func Float(f float64) Value {
	return Value{kind: Real, f: f}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns v's integer value and whether v is an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Integer
}

// Float64 returns v as a float64, converting integers. The second result is
// false if v is absent.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case Integer:
		return float64(v.i), true
	case Real:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders v the way a calculator displays it: "None" for absent
// values, plain decimal for integers, and six digits after the point for
// reals.
func (v Value) String() string {
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Real:
		return strconv.FormatFloat(v.f, 'f', 6, 64)
	default:
		return "None"
	}
}

// isZero reports whether v is numerically zero.
func (v Value) isZero() bool {
	switch v.kind {
	case Integer:
		return v.i == 0
	case Real:
		return v.f == 0
	default:
		return false
	}
}

// Errors returned by Value arithmetic. The evaluator reports them as *Error
// with the offset of the operator, and the *Error unwraps to these.
var (
	ErrOperandMissing = errors.New("operand missing")
	ErrDivisionByZero = errors.New("division by zero")
)

// arith applies an operation with the promotion rules shared by all
// operators: if either side is real, the result is real.
func arith(l, r Value, ints func(a, b int64) int64, reals func(a, b float64) float64) (Value, error) {
	if l.kind == Absent || r.kind == Absent {
		return Value{}, ErrOperandMissing
	}
	if l.kind == Integer && r.kind == Integer {
		return Int(ints(l.i, r.i)), nil
	}
	a, _ := l.Float64()
	b, _ := r.Float64()
	return Float(reals(a, b)), nil
}

// Add returns v + r.
func (v Value) Add(r Value) (Value, error) {
	return arith(v, r,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b },
	)
}

// Sub returns v - r.
func (v Value) Sub(r Value) (Value, error) {
	return arith(v, r,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b },
	)
}

// Mul returns v * r.
func (v Value) Mul(r Value) (Value, error) {
	return arith(v, r,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b },
	)
}

// Quo returns v / r. The quotient of two integers is an integer only if the
// division is exact; otherwise it is the real quotient.
func (v Value) Quo(r Value) (Value, error) {
	if v.kind == Absent || r.kind == Absent {
		return Value{}, ErrOperandMissing
	}
	if r.isZero() {
		return Value{}, ErrDivisionByZero
	}
	if v.kind == Integer && r.kind == Integer {
		if v.i%r.i == 0 {
			return Int(v.i / r.i), nil
		}
		return Float(float64(v.i) / float64(r.i)), nil
	}
	a, _ := v.Float64()
	b, _ := r.Float64()
	return Float(a / b), nil
}
