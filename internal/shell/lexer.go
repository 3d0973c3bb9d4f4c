package shell

import (
	"errors"
	"fmt"
)

// ErrUnterminatedQuote is returned for a quoted word without its closing quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Lexer splits one command line into words. A word is a run of non-blank
// characters, or a single- or double-quoted string that may contain blanks.
type Lexer struct {
	input string
	pos   int  // current position in input
	ch    byte // current character under examination
}

// NewLexer creates a new lexer for one line of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Words returns every word on the line.
func (l *Lexer) Words() ([]string, error) {
	var words []string
	for {
		l.skipWhitespace()
		switch l.ch {
		case 0:
			return words, nil
		case '"', '\'':
			start := l.pos - 1
			word, ok := l.readString(l.ch)
			if !ok {
				return nil, fmt.Errorf("%w at column %d", ErrUnterminatedQuote, start+1)
			}
			words = append(words, word)
		default:
			words = append(words, l.readWord())
		}
	}
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// skipWhitespace advances past whitespace characters.
func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

// readWord reads up to the next blank.
func (l *Lexer) readWord() string {
	start := l.pos - 1
	for l.ch != 0 && !isSpace(l.ch) {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

// readString reads a quoted string. ok is false when the closing quote is missing.
func (l *Lexer) readString(quote byte) (string, bool) {
	l.readChar() // skip opening quote
	start := l.pos - 1
	for l.ch != quote && l.ch != 0 {
		l.readChar()
	}
	if l.ch != quote {
		return "", false
	}
	str := l.input[start : l.pos-1]
	l.readChar() // skip closing quote
	return str, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
