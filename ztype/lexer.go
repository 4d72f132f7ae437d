package ztype

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	buffer []byte
	cursor []byte
}

func NewLexer(s string) *Lexer {
	b := []byte(s)
	return &Lexer{
		buffer: b,
		cursor: b,
	}
}

// Offset returns the number of bytes consumed so far.
func (l *Lexer) Offset() int {
	return len(l.buffer) - len(l.cursor)
}

func (l *Lexer) skip(n int) {
	l.cursor = l.cursor[n:]
}

func (l *Lexer) match(b byte) (bool, error) {
	if err := l.skipSpace(); err != nil {
		return false, err
	}
	return l.matchTight(b)
}

func (l *Lexer) matchTight(b byte) (bool, error) {
	if len(l.cursor) == 0 {
		return false, io.EOF
	}
	if b == l.cursor[0] {
		l.skip(1)
		return true, nil
	}
	return false, nil
}

func (l *Lexer) peekRune() (rune, int, error) {
	if len(l.cursor) == 0 {
		return 0, 0, io.EOF
	}
	r, n := utf8.DecodeRune(l.cursor)
	return r, n, nil
}

func (l *Lexer) skipSpace() error {
	for {
		r, n, err := l.peekRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return nil
		}
		l.skip(n)
	}
}

func (l *Lexer) done() bool {
	if err := l.skipSpace(); err == io.EOF {
		return true
	}
	return len(l.cursor) == 0
}

// TypeChar reports whether r may appear in a type name.
func TypeChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanTypeName() (string, error) {
	var s strings.Builder
	for {
		r, n, err := l.peekRune()
		if err == io.EOF {
			return s.String(), nil
		}
		if err != nil {
			return "", err
		}
		if !TypeChar(r) {
			return s.String(), nil
		}
		s.WriteRune(r)
		l.skip(n)
	}
}
