package ztype

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// An Expr is the parsed form of a type expression.  A name with no
// parentheses has nil Args and Call false.  An integer literal argument
// has Name empty and IsInt true.
type Expr struct {
	Name  string
	Call  bool
	Args  []*Expr
	IsInt bool
	Int   int
}

func (e *Expr) String() string {
	if e.IsInt {
		return strconv.Itoa(e.Int)
	}
	if !e.Call {
		return e.Name
	}
	s := e.Name + "("
	for k, arg := range e.Args {
		if k > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ")"
}

type Parser struct {
	lexer *Lexer
	text  string
}

func NewParser(s string) *Parser {
	return &Parser{
		lexer: NewLexer(s),
		text:  s,
	}
}

// ParseExpr parses a complete type expression such as
// "Dictionary(Optional(string), uint16)" or "FixedString(8)".
func ParseExpr(s string) (*Expr, error) {
	p := NewParser(s)
	e, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.lexer.done() {
		return nil, p.error("extra input after type expression")
	}
	return e, nil
}

func (p *Parser) error(msg string) error {
	return fmt.Errorf("type %q at offset %d: %s", p.text, p.lexer.Offset(), msg)
}

func (p *Parser) errorf(msg string, args ...interface{}) error {
	return p.error(fmt.Sprintf(msg, args...))
}

func (p *Parser) parseType() (*Expr, error) {
	e, err := p.matchType()
	if err == io.EOF {
		err = nil
	}
	if e == nil && err == nil {
		err = p.error("couldn't parse type")
	}
	return e, err
}

func (p *Parser) matchType() (*Expr, error) {
	l := p.lexer
	if err := l.skipSpace(); err != nil {
		return nil, err
	}
	r, _, err := l.peekRune()
	if err != nil {
		return nil, err
	}
	if !TypeChar(r) || unicode.IsDigit(r) {
		return nil, nil
	}
	name, err := l.scanTypeName()
	if err != nil {
		return nil, err
	}
	e := &Expr{Name: name}
	ok, err := l.match('(')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !ok {
		return e, nil
	}
	e.Call = true
	args, err := p.matchArgs()
	if err != nil {
		return nil, err
	}
	e.Args = args
	ok, err = l.match(')')
	if errors.Is(err, io.EOF) || (err == nil && !ok) {
		return nil, p.errorf("mismatched parentheses while parsing type %q", name)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) matchArgs() ([]*Expr, error) {
	l := p.lexer
	var args []*Expr
	for {
		arg, err := p.matchArg()
		if err != nil {
			return nil, err
		}
		if arg == nil {
			if len(args) > 0 {
				return nil, p.error("missing argument after ','")
			}
			return nil, nil
		}
		args = append(args, arg)
		ok, err := l.match(',')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if !ok {
			return args, nil
		}
	}
}

func (p *Parser) matchArg() (*Expr, error) {
	l := p.lexer
	if err := l.skipSpace(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	r, _, err := l.peekRune()
	if err != nil {
		return nil, err
	}
	if unicode.IsDigit(r) {
		return p.matchInt()
	}
	e, err := p.matchType()
	if err == io.EOF {
		err = nil
	}
	return e, err
}

func (p *Parser) matchInt() (*Expr, error) {
	s, err := p.lexer.scanTypeName()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, p.errorf("bad integer argument %q", s)
	}
	return &Expr{IsInt: true, Int: n}, nil
}
