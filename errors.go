package crepl

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors an evaluation can produce.
type ErrorKind int8

const (
	errNone ErrorKind = iota
	// MalformedInput is an empty line.
	MalformedInput
	// NumericValueExpected means a number was expected but the character
	// under the cursor is not a digit.
	NumericValueExpected
	// MalformedFloat is a number with a second decimal point.
	MalformedFloat
	// NumberOutOfRange is an integer literal that does not fit in 64 bits.
	NumberOutOfRange
	// MatchFailure means a specific character was expected, e.g. a closing
	// parenthesis or the end of the line.
	MatchFailure
	// OperandMissing means an operator, or the statement itself, found an
	// absent value, usually an unassigned variable.
	OperandMissing
	// DivisionByZero is a division whose right operand is 0 or 0.0.
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case NumericValueExpected:
		return "NumericValueExpected"
	case MalformedFloat:
		return "MalformedFloat"
	case NumberOutOfRange:
		return "NumberOutOfRange"
	case MatchFailure:
		return "MatchFailure"
	case OperandMissing:
		return "OperandMissing"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Sentinels for each kind, for use with errors.Is. ErrOperandMissing and
// ErrDivisionByZero are also returned directly by Value arithmetic.
var (
	ErrMalformedInput       = errors.New("empty input")
	ErrNumericValueExpected = errors.New("numeric value expected")
	ErrMalformedFloat       = errors.New("bad floating point value")
	ErrNumberOutOfRange     = errors.New("number out of range")
	ErrMatchFailure         = errors.New("unexpected character")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedInput:
		return ErrMalformedInput
	case NumericValueExpected:
		return ErrNumericValueExpected
	case MalformedFloat:
		return ErrMalformedFloat
	case NumberOutOfRange:
		return ErrNumberOutOfRange
	case MatchFailure:
		return ErrMatchFailure
	case OperandMissing:
		return ErrOperandMissing
	case DivisionByZero:
		return ErrDivisionByZero
	default:
		return nil
	}
}

// kindOf maps an arithmetic error to its kind.
func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrOperandMissing):
		return OperandMissing
	case errors.Is(err, ErrDivisionByZero):
		return DivisionByZero
	default:
		panic("crepl: unknown arithmetic error: " + err.Error())
	}
}

// Error is an error from evaluating a line. It implements InputError and
// unwraps to the sentinel for its kind.
type Error struct {
	// Kind is the class of error.
	Kind ErrorKind
	// Offset is the 0-based offset of the character that caused the error.
	Offset int
	// Found is the character at Offset. It is the terminator if the error
	// happened at the end of the line.
	Found byte
	// Want is the character the parser expected, for MatchFailure. It is the
	// terminator if the parser expected the end of the line.
	Want byte
	// Name is the variable involved, if any.
	Name byte
}

// Message describes the error without its position.
func (err *Error) Message() string {
	switch err.Kind {
	case MatchFailure:
		return "expected " + describe(err.Want) + ", found " + describe(err.Found)
	case OperandMissing:
		if err.Name != 0 {
			return "undefined variable " + string(rune(err.Name))
		}
		return "operand missing"
	case NumericValueExpected:
		return "numeric value expected, found " + describe(err.Found)
	}
	if s := err.Kind.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown error"
}

func (err *Error) Error() string {
	return errpos(err.Offset, err.Message())
}

func (err *Error) Unwrap() error {
	return err.Kind.sentinel()
}

func (err *Error) Pos() int {
	return err.Offset
}

// describe quotes a character for an error message.
func describe(b byte) string {
	if b == terminator {
		return "end of line"
	}
	return strconv.QuoteRune(rune(b))
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based offset of the character that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
