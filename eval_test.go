package crepl_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/crepl"
)

// TestSession runs a sequence of statements against one Evaluator, as a user
// would type them. "?" marks an expected failure.
func TestSession(t *testing.T) {
	cases := []struct {
		src string
		r   string
	}{
		{"1", "1"},
		{"3.14", "3.140000"},
		{"3.14.14", "?"},
		{"+1000", "1000"},
		{"-555", "-555"},
		{"1+1", "2"},
		{"1+2+3+4+5+6+7+8+10", "46"},
		{"1+3.14", "4.140000"},
		{"5.534+234.22", "239.754000"},
		{"555-1000", "-445"},
		{"3*8", "24"},
		{"100*0", "0"},
		{"(1+2)*5", "15"},
		{"1+2*5", "11"},
		{"a=(2*2)", "4"},
		{"b  =3 ", "3"},
		{"4/7", "0.571429"},
		{"1/2", "0.500000"},
		{"0/2", "0"},
		{"1/0", "?"},
		{"(a+b)", "7"},
		{"c=a+b", "7"},
		{"g", "?"},
		{"+4+d", "?"},
		{"8823yhjdjkjw822", "?"},
		{"(1 + 2)", "3"},
		{"a / (a + b)", "0.571429"},
		{"n + 0", "?"},
		{"a", "4"},
		{"C", "7"},
	}
	ev := crepl.New()
	for _, c := range cases {
		r, ok := ev.Evaluate(c.src + "\n")
		if c.r == "?" {
			if ok {
				t.Errorf("%q should fail but gave %q", c.src, r)
			}
			if msg, _ := ev.LastError(); msg == "" {
				t.Errorf("%q failed with no error message", c.src)
			}
			continue
		}
		if !ok {
			msg, off := ev.LastError()
			t.Errorf("%q failed at %d: %s", c.src, off, msg)
			continue
		}
		if r != c.r {
			t.Errorf("%q: want %q, got %q", c.src, c.r, r)
		}
		if msg, off := ev.LastError(); msg != "" || off != 0 {
			t.Errorf("%q succeeded but left error %q at %d", c.src, msg, off)
		}
	}
}

func TestEvalKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind crepl.Kind
		r    string
	}{
		{"int", "42", crepl.Integer, "42"},
		{"real", "2.5", crepl.Real, "2.500000"},
		{"trailing-dot", "2.", crepl.Real, "2.000000"},
		{"add-int", "2+3", crepl.Integer, "5"},
		{"sub-mixed", "3-0.5", crepl.Real, "2.500000"},
		{"mul-mixed", "2.5*2", crepl.Real, "5.000000"},
		{"div-exact", "6/3", crepl.Integer, "2"},
		{"div-exact-neg", "-6/3", crepl.Integer, "-2"},
		{"div-inexact", "1/3", crepl.Real, "0.333333"},
		{"div-inexact-neg", "-7/2", crepl.Real, "-3.500000"},
		{"div-real", "1.0/4", crepl.Real, "0.250000"},
		{"div-real-exact", "6.0/3", crepl.Real, "2.000000"},
		{"left-assoc-sub", "10-4-3", crepl.Integer, "3"},
		{"left-assoc-div", "100/10/5", crepl.Integer, "2"},
		{"nested", "((2))", crepl.Integer, "2"},
		{"unary-paren", "-(2*3)", crepl.Integer, "-6"},
		{"leading-blank", " 7", crepl.Integer, "7"},
		{"leading-tab", "\t2*3", crepl.Integer, "6"},
		{"wrap", "9223372036854775807+1", crepl.Integer, "-9223372036854775808"},
		{"no-newline", "1+1", crepl.Integer, "2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := crepl.New().Eval(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if v.Kind() != c.kind {
				t.Errorf("%q: want %v, got %v", c.src, c.kind, v.Kind())
			}
			if v.String() != c.r {
				t.Errorf("%q: want %q, got %q", c.src, c.r, v.String())
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind crepl.ErrorKind
		pos  int
		is   error
	}{
		{"empty", "", crepl.MalformedInput, 0, crepl.ErrMalformedInput},
		{"blank-line", "\n", crepl.NumericValueExpected, 0, crepl.ErrNumericValueExpected},
		{"two-dots", "3.14.14", crepl.MalformedFloat, 4, crepl.ErrMalformedFloat},
		{"dot-dot", "1..", crepl.MalformedFloat, 2, crepl.ErrMalformedFloat},
		{"leading-dot", ".5", crepl.NumericValueExpected, 0, crepl.ErrNumericValueExpected},
		{"op-first", "*2", crepl.NumericValueExpected, 0, crepl.ErrNumericValueExpected},
		{"double-sign", "7/-2", crepl.NumericValueExpected, 2, crepl.ErrNumericValueExpected},
		{"overflow", "99999999999999999999", crepl.NumberOutOfRange, 0, crepl.ErrNumberOutOfRange},
		{"unclosed", "(1+2", crepl.MatchFailure, 4, crepl.ErrMatchFailure},
		{"unopened", "1+2)", crepl.MatchFailure, 3, crepl.ErrMatchFailure},
		{"trailing", "8823yhjdjkjw822", crepl.MatchFailure, 4, crepl.ErrMatchFailure},
		{"two-blanks-lead", "  1", crepl.NumericValueExpected, 1, crepl.ErrNumericValueExpected},
		{"div-zero", "1/0", crepl.DivisionByZero, 1, crepl.ErrDivisionByZero},
		{"div-zero-real", "1.5/0.0", crepl.DivisionByZero, 3, crepl.ErrDivisionByZero},
		{"div-zero-int-by-real", "3/0.0", crepl.DivisionByZero, 1, crepl.ErrDivisionByZero},
		{"div-zero-expr", "4/(2-2)", crepl.DivisionByZero, 1, crepl.ErrDivisionByZero},
		{"undef", "g", crepl.OperandMissing, 0, crepl.ErrOperandMissing},
		{"undef-paren", "(g)", crepl.OperandMissing, 1, crepl.ErrOperandMissing},
		{"undef-add", "n + 0", crepl.OperandMissing, 2, crepl.ErrOperandMissing},
		{"undef-rhs", "+4+d", crepl.OperandMissing, 2, crepl.ErrOperandMissing},
		{"undef-mul", "2*x", crepl.OperandMissing, 1, crepl.ErrOperandMissing},
		{"undef-assign", "a=z", crepl.OperandMissing, 2, crepl.ErrOperandMissing},
		{"assign-trailing", "x=1 y", crepl.MatchFailure, 4, crepl.ErrMatchFailure},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := crepl.New()
			if r, ok := ev.Evaluate(c.src); ok {
				t.Fatalf("%q should fail but gave %q", c.src, r)
			}
			err := ev.Err()
			var e *crepl.Error
			if !errors.As(err, &e) {
				t.Fatalf("%#v is not *crepl.Error", err)
			}
			if e.Kind != c.kind {
				t.Errorf("%q: want %v, got %v (%v)", c.src, c.kind, e.Kind, err)
			}
			if e.Pos() != c.pos {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, e.Pos(), err)
			}
			if !errors.Is(err, c.is) {
				t.Errorf("%q: %v does not unwrap to %v", c.src, err, c.is)
			}
			msg, off := ev.LastError()
			if msg != e.Message() || off != e.Offset {
				t.Errorf("%q: LastError gave %q at %d, want %q at %d", c.src, msg, off, e.Message(), e.Offset)
			}
			if v := ev.Vars(); len(v) != 0 {
				t.Errorf("%q: failed statement assigned %v", c.src, v)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"g", "undefined variable g"},
		{"(1", "expected ')', found end of line"},
		{"1 2", "expected end of line, found '2'"},
		{"1/0", "division by zero"},
		{"1.2.3", "bad floating point value"},
		{"x+1", "operand missing"},
		{"$", "numeric value expected, found '$'"},
	}
	for _, c := range cases {
		ev := crepl.New()
		if _, ok := ev.Evaluate(c.src); ok {
			t.Errorf("%q should fail", c.src)
			continue
		}
		if msg, _ := ev.LastError(); msg != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, msg)
		}
		if err := ev.Err(); !strings.HasSuffix(err.Error(), c.msg) {
			t.Errorf("%q: Error() %q lacks message %q", c.src, err.Error(), c.msg)
		}
	}
}

// TestWhitespaceRuns pins that only one blank is skipped between tokens by
// default.
func TestWhitespaceRuns(t *testing.T) {
	cases := []struct {
		src  string
		r    string
		runs string
	}{
		{"1 + 2", "3", "3"},
		{"1  + 2", "?", "3"},
		{"1 +  2", "?", "3"},
		{"( 1 )", "1", "1"},
		{"(  1 )", "?", "1"},
		{"a  =   5", "?", "5"},
		{"a  = 5", "5", "5"},
	}
	for _, c := range cases {
		for _, mode := range []struct {
			ev   *crepl.Evaluator
			want string
		}{
			{crepl.New(), c.r},
			{crepl.New(crepl.SkipWhitespaceRuns()), c.runs},
		} {
			r, ok := mode.ev.Evaluate(c.src)
			if !ok {
				r = "?"
			}
			if r != mode.want {
				t.Errorf("%q: want %q, got %q", c.src, mode.want, r)
			}
		}
	}
}

func TestAssignment(t *testing.T) {
	ev := crepl.New()
	if r, ok := ev.Evaluate("q=2.5"); !ok || r != "2.500000" {
		t.Fatalf("assignment gave %q, %t", r, ok)
	}
	if v := ev.Lookup('Q'); v.String() != "2.500000" {
		t.Errorf("Q should be 2.5 but is %v", v)
	}
	if r, ok := ev.Evaluate("Q*2"); !ok || r != "5.000000" {
		t.Errorf("Q*2 gave %q, %t", r, ok)
	}
	if r, ok := ev.Evaluate("q=q+1"); !ok || r != "3.500000" {
		t.Errorf("q=q+1 gave %q, %t", r, ok)
	}
	if _, ok := ev.Evaluate("q=1/0"); ok {
		t.Errorf("q=1/0 should fail")
	}
	if v := ev.Lookup('q'); v.String() != "3.500000" {
		t.Errorf("failed assignment changed q to %v", v)
	}
	ev.Reset()
	if v := ev.Lookup('q'); v.Kind() != crepl.Absent {
		t.Errorf("q should be absent after Reset but is %v", v)
	}
	if _, ok := ev.Evaluate("q"); ok {
		t.Errorf("q should be undefined after Reset")
	}
}

func TestWithVars(t *testing.T) {
	var s crepl.Store
	s.Set('x', crepl.Int(3)).Set('y', crepl.Float(0.5))
	ev := crepl.New(crepl.WithVars(&s))
	if r, ok := ev.Evaluate("x*y"); !ok || r != "1.500000" {
		t.Errorf("x*y gave %q, %t", r, ok)
	}
	ev.Evaluate("x=10")
	if v := s.Lookup('x'); v.String() != "3" {
		t.Errorf("assignment leaked into the initial store: x = %v", v)
	}
}

func TestConcurrentEvaluate(t *testing.T) {
	ev := crepl.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			for k := 0; k < 100; k++ {
				src := fmt.Sprintf("%s=%d", name, k)
				if r, ok := ev.Evaluate(src); !ok || r != fmt.Sprint(k) {
					t.Errorf("%q gave %q, %t", src, r, ok)
				}
			}
		}(i)
	}
	wg.Wait()
	if v := ev.Vars(); len(v) != 8 {
		t.Errorf("want 8 variables, got %v", v)
	}
}

func TestDefault(t *testing.T) {
	defer crepl.Default().Reset()
	if r, ok := crepl.Evaluate("z=4\n"); !ok || r != "4" {
		t.Fatalf("z=4 gave %q, %t", r, ok)
	}
	if r, ok := crepl.Evaluate("z/8\n"); !ok || r != "0.500000" {
		t.Errorf("z/8 gave %q, %t", r, ok)
	}
	if _, ok := crepl.Evaluate("z/0\n"); ok {
		t.Fatal("z/0 should fail")
	}
	if msg, off := crepl.LastError(); msg != "division by zero" || off != 1 {
		t.Errorf("wrong last error %q at %d", msg, off)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		ev := crepl.New()
		for i := 0; i < b.N; i++ {
			ev.Evaluate("(1+2)*5-4/7\n")
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		ev := crepl.New()
		ev.Evaluate("x=2\n")
		ev.Evaluate("y=3\n")
		for i := 0; i < b.N; i++ {
			ev.Evaluate("x*y+x/y\n")
		}
	})
}

func Example() {
	ev := crepl.New()
	for _, line := range []string{"a = 4", "b=3", "a / (a + b)", "a / (b - 3)"} {
		r, ok := ev.Evaluate(line + "\n")
		if !ok {
			msg, off := ev.LastError()
			fmt.Printf("%s\n%s^ %s\n", line, strings.Repeat(" ", off), msg)
			continue
		}
		fmt.Println(r)
	}

	// Output:
	// 4
	// 3
	// 0.571429
	// a / (b - 3)
	//   ^ division by zero
}
