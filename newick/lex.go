package newick

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type tokenType int

const (
	tokenError tokenType = iota
	tokenEOF
	tokenTerminal   // ';'
	tokenDescStart  // '('
	tokenDescEnd    // ')'
	tokenSubtree    // "label", "label:length", ":length" or ""
)

const (
	eof        = 0
	terminal   = ';'
	descDelim  = ','
	descStart  = '('
	descEnd    = ')'
	lengthMark = ':'
)

// Characters that may not appear in an unquoted label.
const labelBanned = " ()[]':;,"

type stateFn func(lx *lexer) stateFn

// A lexer tokenizes Newick input into subtree, descendant-list and
// terminal tokens, buffering the reader as it goes. Tokens are delivered
// through a channel driven lazily by nextToken.
type lexer struct {
	input io.Reader
	buf   string
	start int
	pos   int
	width int
	line  int
	state stateFn
	toks  chan token
}

type token struct {
	typ  tokenType
	val  string
	line int
}

func lex(input io.Reader) *lexer {
	return &lexer{
		input: bufio.NewReader(input),
		state: lexDescendants,
		line:  1,
		toks:  make(chan token, 10),
	}
}

func (lx *lexer) nextToken() token {
	for {
		select {
		case tok := <-lx.toks:
			return tok
		default:
			lx.state = lx.state(lx)
		}
	}
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ tokenType) {
	lx.toks <- token{typ, lx.current(), lx.line}
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.buf) {
		chunk := make([]byte, 4096)
		n, err := lx.input.Read(chunk)
		if err != nil || lx.pos >= len(lx.buf)+n {
			lx.width = 0
			return eof
		}
		lx.buf += string(chunk[0:n])
	}
	if lx.buf[lx.pos] == '\n' {
		lx.line++
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. It may be called only once per call of
// next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.pos < len(lx.buf) && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
}

// errorf stops all lexing by emitting an error token and returning nil.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	for i, value := range values {
		if v, ok := value.(rune); ok {
			values[i] = escapeSpecial(v)
		}
	}
	lx.toks <- token{tokenError, fmt.Sprintf(format, values...), lx.line}
	return nil
}

func lexDescendants(lx *lexer) stateFn {
	r := lx.next()
	if isSpace(r) {
		return lexSkip(lx, lexDescendants)
	}
	switch r {
	case descStart:
		lx.ignore()
		lx.emit(tokenDescStart)
		return lexSubtreeStart
	case eof:
		if lx.pos > lx.start {
			return lx.errorf("unexpected end of input")
		}
		lx.emit(tokenEOF)
		return nil
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

func lexSubtreeStart(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSpace(r):
		return lexSkip(lx, lexSubtreeStart)
	case isSubtreeEnd(r):
		lx.backup()
		lx.ignore()
		return lexSubtreeEnd
	case r == descStart:
		lx.backup()
		return lexDescendants
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

func lexSubtreeEnd(lx *lexer) stateFn {
	lx.emit(tokenSubtree)
	r := lx.next()
	switch r {
	case descDelim:
		lx.ignore()
		return lexSubtreeStart
	case descEnd:
		lx.ignore()
		lx.emit(tokenDescEnd)
		return lexLabelStart
	case terminal:
		lx.ignore()
		lx.emit(tokenTerminal)
		return lexDescendants
	case eof:
		return lx.errorf("unexpected end of input: missing ';'")
	}
	return lx.errorf("expected ',', ')' or ';' after a subtree, got %q", r)
}

func lexLabelStart(lx *lexer) stateFn {
	r := lx.next()
	if isSpace(r) {
		return lexSkip(lx, lexLabelStart)
	}
	lx.backup()
	return lexLabel
}

func lexLabel(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == lengthMark:
		return lexLengthSign
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case strings.ContainsRune(labelBanned, r) || r == '\n' || r == '\r' || r == '\t':
		return lx.errorf("%q may not appear in an unquoted label "+
			"(banned characters: %q)", r, labelBanned)
	}
	return lexLabel
}

func lexLengthSign(lx *lexer) stateFn {
	if r := lx.next(); r != '-' && r != '+' {
		lx.backup()
	}
	return lexLengthInt
}

func lexLengthInt(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case r == '.':
		return lexLengthFrac
	case r == 'e' || r == 'E':
		return lexLengthExpSign
	case isDigit(r):
		return lexLengthInt
	}
	return lx.errorf("expected a digit, '.', an exponent or the end of a "+
		"subtree in a branch length, got %q", r)
}

func lexLengthFrac(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case r == 'e' || r == 'E':
		return lexLengthExpSign
	case isDigit(r):
		return lexLengthFrac
	}
	return lx.errorf("expected a digit, an exponent or the end of a "+
		"subtree in a branch length, got %q", r)
}

func lexLengthExpSign(lx *lexer) stateFn {
	if r := lx.next(); r != '-' && r != '+' {
		lx.backup()
	}
	return lexLengthExp
}

func lexLengthExp(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case isDigit(r):
		return lexLengthExp
	}
	return lx.errorf("expected a digit or the end of a subtree in a "+
		"branch length exponent, got %q", r)
}

// lexSkip drops all slurped input and moves on to the next state.
func lexSkip(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		lx.ignore()
		return nextState
	}
}

func isSubtreeEnd(r rune) bool {
	return r == descDelim || r == descEnd || r == terminal || r == eof
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (typ tokenType) String() string {
	switch typ {
	case tokenError:
		return "error"
	case tokenEOF:
		return "EOF"
	case tokenTerminal:
		return "';'"
	case tokenDescStart:
		return "'('"
	case tokenDescEnd:
		return "')'"
	case tokenSubtree:
		return "subtree"
	}
	panic(fmt.Sprintf("BUG: unknown token type %d", int(typ)))
}

func (tok token) String() string {
	return fmt.Sprintf("(%s, %s)", tok.typ, tok.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	case eof:
		return "EOF"
	}
	return string(c)
}
