package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/osta-lang/osta/lexer"
)

type ErrorKind int

const (
	UnexpectedEOF ErrorKind = iota
	UnexpectedToken
	UnexpectedSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedSymbol:
		return "UnexpectedSymbol"
	}
	return "Unknown"
}

// Error is a syntax error at a single position of the input.
type Error struct {
	Kind     ErrorKind
	Got      lexer.Token
	Expected []lexer.TokenKind
	Offset   int
	Pos      lexer.Position
	// Err is the lexical error behind an UnexpectedSymbol.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return fmt.Sprintf("%s: unexpected end of input%s", e.Pos, e.expected())
	case UnexpectedSymbol:
		return fmt.Sprintf("%s: unexpected symbol %q", e.Pos, e.Got.Literal)
	}
	return fmt.Sprintf("%s: unexpected %s %q%s", e.Pos, e.Got.Kind, e.Got.Literal, e.expected())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) expected() string {
	switch len(e.Expected) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(", expected %q", e.Expected[0].String())
	}
	names := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		names[i] = fmt.Sprintf("%q", kind.String())
	}
	return ", expected one of " + strings.Join(names, ", ")
}

// unexpected describes why tok, as returned by Peek with err, does not fit.
func unexpected(tok lexer.Token, err error, expected []lexer.TokenKind) *Error {
	e := &Error{
		Kind:     UnexpectedToken,
		Got:      tok,
		Expected: expected,
		Offset:   tok.Span.Start.Offset,
		Pos:      tok.Span.Start,
	}
	switch {
	case err == io.EOF:
		e.Kind = UnexpectedEOF
	case err != nil:
		e.Kind = UnexpectedSymbol
		e.Err = err
	}
	return e
}
