// Package lexer converts expression source text into a stream of tokens.
//
// The lexer is pull-based and single-pass: Next returns tokens left to
// right until the terminal EOF token. Operator symbols are matched
// against the grammar longest-first, so multi-character operators win
// over their prefixes (== over =, || over |). Numeric literals are
// decoded to float64 at lexing time, which is where the language's
// IEEE-754 double semantics come from: an integer literal too large for
// a double silently becomes the nearest representable value.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
)

// LexError is a lexing failure, tagged with the byte offset of the
// offending character.
type LexError struct {
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at position %d: %s", e.Pos, e.Message)
}

// Lexer produces tokens from one input string. It is not restartable;
// create a new Lexer to scan again.
type Lexer struct {
	input string
	pos   int
	// Operator symbols longest-first, captured from the grammar at
	// creation. Symbols that look like identifiers (such as "in") are
	// matched through the identifier path instead, so this list only
	// drives punctuation-style matching.
	symbols []string
	wordOps map[string]bool
}

// New creates a lexer over input using the grammar's current operator
// symbols.
func New(input string, g *grammar.Grammar) *Lexer {
	l := &Lexer{input: input, wordOps: make(map[string]bool)}
	for _, sym := range g.OperatorSymbols() {
		if isIdentStart(sym[0]) {
			l.wordOps[sym] = true
			continue
		}
		l.symbols = append(l.symbols, sym)
	}
	return l
}

// Next returns the next token, or a *LexError. After the input is
// exhausted it returns EOF tokens forever.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		return l.scanNumber()
	case ch == '\'' || ch == '"':
		return l.scanString()
	case isIdentStart(ch):
		return l.scanIdentifier()
	}

	for _, sym := range l.symbols {
		if strings.HasPrefix(l.input[l.pos:], sym) {
			l.pos += len(sym)
			return Token{Kind: Operator, Text: sym, Pos: start}, nil
		}
	}

	if strings.IndexByte("()[]{},:?.|", ch) >= 0 {
		l.pos++
		return Token{Kind: Punctuation, Text: string(ch), Pos: start}, nil
	}

	return Token{}, &LexError{Pos: start, Message: fmt.Sprintf("unrecognized character %q", ch)}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// scanNumber greedily consumes digits, at most one decimal point, and an
// optional exponent. The decimal point and exponent marker are only
// consumed when a digit actually follows, so "1.foo" lexes as 1 . foo.
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		rest := l.input[l.pos+1:]
		if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			rest = rest[1:]
		}
		if len(rest) > 0 && isDigit(rest[0]) {
			l.pos++ // e
			if l.input[l.pos] == '+' || l.input[l.pos] == '-' {
				l.pos++
			}
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	text := l.input[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &LexError{Pos: start, Message: fmt.Sprintf("malformed number %q", text)}
	}
	return Token{Kind: Literal, Text: text, Value: value, Pos: start}, nil
}

// scanString consumes a single- or double-quoted string. A backslash
// escapes the delimiter and itself; any other backslash passes through
// verbatim. The quote character is not retained past lexing.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case quote:
			l.pos++
			return Token{Kind: Literal, Text: l.input[start:l.pos], Value: sb.String(), Pos: start}, nil
		case '\\':
			if l.pos+1 < len(l.input) && (l.input[l.pos+1] == quote || l.input[l.pos+1] == '\\') {
				sb.WriteByte(l.input[l.pos+1])
				l.pos += 2
				continue
			}
			sb.WriteByte(ch)
			l.pos++
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
	return Token{}, &LexError{Pos: start, Message: "unterminated string"}
}

func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]

	switch word {
	case "true":
		return Token{Kind: Literal, Text: word, Value: true, Pos: start}, nil
	case "false":
		return Token{Kind: Literal, Text: word, Value: false, Pos: start}, nil
	}
	if l.wordOps[word] {
		return Token{Kind: Operator, Text: word, Pos: start}, nil
	}
	return Token{Kind: Identifier, Text: word, Pos: start}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
