// Package hdl implements the scanner and parser for port specification
// strings like "a[32], b[32], clk".
//
package hdl

import (
	"strconv"

	"github.com/pkg/errors"
)

// Token types
const (
	EOF = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
)

var typeNames = [...]string{"end of input", "character", "identifier", "'['", "']'", "','", "integer"}

// Item is a lexical token.
//
type Item struct {
	Type  int
	Pos   int
	Value string
}

func (i Item) String() string {
	if i.Type == Raw || i.Type == Ident || i.Type == Int {
		return typeNames[i.Type] + " " + strconv.Quote(i.Value)
	}
	return typeNames[i.Type]
}

// Lexer splits a port specification into Items.
//
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a new lexer for the given input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// Lex returns the next item. Once the input is exhausted, or after a Raw item,
// it only returns EOF.
//
func (l *Lexer) Lex() Item {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Item{EOF, l.pos, ""}
	}
	start := l.pos
	c := l.input[l.pos]
	l.pos++
	switch {
	case c == '[':
		return Item{BracketOpen, start, "["}
	case c == ']':
		return Item{BracketClose, start, "]"}
	case c == ',':
		return Item{Comma, start, ","}
	case isDigit(c):
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		return Item{Int, start, l.input[start:l.pos]}
	case isLetter(c):
		for l.pos < len(l.input) {
			c = l.input[l.pos]
			if !isLetter(c) && !isDigit(c) && c != '$' {
				break
			}
			l.pos++
		}
		return Item{Ident, start, l.input[start:l.pos]}
	}
	l.pos = len(l.input)
	return Item{Raw, start, string(c)}
}

// Port is a port name with its bit width.
//
type Port struct {
	Name  string
	Width uint
	Pos   int
}

// ParsePorts parses a comma separated list of port names with an optional
// width in brackets. The width defaults to 1:
//
//	ParsePorts("a[8], sel") // returns []Port{{"a", 8, 0}, {"sel", 1, 6}}
//
func ParsePorts(input string) ([]Port, error) {
	var out []Port
	l := NewLexer(input)
	i := l.Lex()
	if i.Type == EOF {
		return nil, nil
	}
	for {
		if i.Type != Ident {
			return nil, parseError(input, i, "expected port name")
		}
		p := Port{Name: i.Value, Width: 1, Pos: i.Pos}
		i = l.Lex()
		if i.Type == BracketOpen {
			i = l.Lex()
			if i.Type != Int {
				return nil, parseError(input, i, "expected port width")
			}
			w, err := strconv.ParseUint(i.Value, 10, 32)
			if err != nil || w == 0 {
				return nil, parseError(input, i, "invalid port width")
			}
			p.Width = uint(w)
			if i = l.Lex(); i.Type != BracketClose {
				return nil, parseError(input, i, "missing close bracket")
			}
			i = l.Lex()
		}
		out = append(out, p)
		switch i.Type {
		case EOF:
			return out, nil
		case Comma:
			i = l.Lex()
		default:
			return nil, parseError(input, i, "expected comma or end of input")
		}
	}
}

func parseError(in string, i Item, msg string) error {
	return errors.Errorf("in %q at pos %d: %s, got %s", in, i.Pos+1, msg, i)
}
