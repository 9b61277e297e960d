package crepl

// Store holds the 26 single-letter variables. Names are case-insensitive. The
// zero Store has every variable absent. A Store is not safe to use
// concurrently; Evaluator serializes access to its own.
type Store struct {
	slots [26]Value
}

// slot returns the index of a variable name. Panics if name is not an ASCII
// letter; the grammar only reaches here with letters.
func slot(name byte) int {
	switch {
	case 'a' <= name && name <= 'z':
		return int(name - 'a')
	case 'A' <= name && name <= 'Z':
		return int(name - 'A')
	default:
		panic("crepl: variable name out of range: " + describe(name))
	}
}

// Lookup returns the value of a variable. The result is absent if the
// variable has never been assigned.
func (s *Store) Lookup(name byte) Value {
	return s.slots[slot(name)]
}

// Set assigns a variable. Returns s for chaining.
func (s *Store) Set(name byte, v Value) *Store {
	s.slots[slot(name)] = v
	return s
}

// Reset makes every variable absent.
func (s *Store) Reset() {
	s.slots = [26]Value{}
}

// Clone returns a copy of s. Assignments to either do not affect the other.
func (s *Store) Clone() *Store {
	n := *s
	return &n
}

// Var is an assigned variable, as listed by Vars.
type Var struct {
	// Name is the uppercase letter naming the variable.
	Name  byte
	Value Value
}

// Vars lists the assigned variables in alphabetical order.
func (s *Store) Vars() []Var {
	var r []Var
	for i, v := range s.slots {
		if v.kind == Absent {
			continue
		}
		r = append(r, Var{Name: byte('A' + i), Value: v})
	}
	return r
}
