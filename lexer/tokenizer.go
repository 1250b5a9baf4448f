package lexer

import (
	"fmt"
	"io"
	"iter"
)

// SymbolError reports input that does not start any token.
type SymbolError struct {
	Offset  int
	Pos     Position
	Literal string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: unexpected symbol %q at offset %d", e.Pos, e.Literal, e.Offset)
}

// Tokenizer is a cursor over the token stream of one source buffer. It holds
// the scanner and one token of lookahead by value, so assigning a Tokenizer
// to another variable forks it: both copies advance independently.
type Tokenizer struct {
	lexer Lexer
	token Token
}

func NewTokenizer(input []byte, file string) Tokenizer {
	t := Tokenizer{lexer: NewLexer(input, file)}
	t.token = t.lexer.NextToken()
	return t
}

// Peek returns the current token without consuming it. The error is io.EOF
// at the end of input and a *SymbolError when the current input could not be
// lexed; in that case the returned token is the TokenError covering it.
func (t *Tokenizer) Peek() (Token, error) {
	return t.token, t.err()
}

// Next returns the current token, like Peek, and advances past it. A
// lexical error is consumed too, so callers can keep going after one. At the
// end of input Next stays put and keeps returning io.EOF.
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.Peek()
	if t.token.Kind != TokenEOF {
		t.token = t.lexer.NextToken()
	}
	return tok, err
}

// Check consumes the current token if it has the given kind.
func (t *Tokenizer) Check(kind TokenKind) (Token, bool) {
	tok, err := t.Peek()
	if err != nil || tok.Kind != kind {
		return Token{}, false
	}
	t.Next()
	return tok, true
}

// Position is the start of the current token.
func (t *Tokenizer) Position() Position {
	return t.token.Span.Start
}

// Offset is the byte offset of the current token.
func (t *Tokenizer) Offset() int {
	return t.token.Span.Start.Offset
}

// All drains a copy of the tokenizer. The receiver itself is not advanced.
func (t Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

func (t *Tokenizer) err() error {
	switch t.token.Kind {
	case TokenEOF:
		return io.EOF
	case TokenError:
		return &SymbolError{
			Offset:  t.token.Span.Start.Offset,
			Pos:     t.token.Span.Start,
			Literal: t.token.Literal,
		}
	}
	return nil
}
