package crepl

import "strconv"

// terminator ends every line the cursor scans.
const terminator = '\n'

// cursor scans a line one byte at a time. There is no pushback: the only
// unconsumed input the parser can see is look.
type cursor struct {
	src string
	// pos is the offset of look in src.
	pos  int
	look byte
	// runs makes skipWhite consume a whole run of blanks rather than one.
	runs bool
}

// newCursor loads the first character of src and skips one blank after it.
// src must be non-empty and end with the terminator.
func newCursor(src string, runs bool) *cursor {
	if src == "" || src[len(src)-1] != terminator {
		panic("crepl: cursor on unterminated line")
	}
	c := &cursor{src: src, look: src[0], runs: runs}
	c.skipWhite()
	return c
}

// advance loads the next character. Advancing from the terminator is a bug in
// the grammar, never a user error.
func (c *cursor) advance() {
	if c.look == terminator {
		panic("crepl: parser logic error at offset " + strconv.Itoa(c.pos))
	}
	c.pos++
	c.look = c.src[c.pos]
}

// skipWhite advances past one space or tab, or a run of them if the cursor
// was created to skip runs.
func (c *cursor) skipWhite() {
	if !isWhite(c.look) {
		return
	}
	c.advance()
	for c.runs && isWhite(c.look) {
		c.advance()
	}
}

func isWhite(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isAddop(b byte) bool {
	return b == '+' || b == '-'
}

func isMulop(b byte) bool {
	return b == '*' || b == '/'
}
