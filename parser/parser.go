// Package parser is a backtracking recursive-descent parser for osta. Every
// production is a Rule that pushes nodes onto a shared ast.Builder; rules that
// may fail part way are run inside Attempt, Optional or Choice so a failed
// alternative leaves neither consumed tokens nor stray nodes behind.
package parser

import (
	"fmt"
	"io"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithPartial lets Finish succeed when input remains after the entry
// production.
func WithPartial() Option {
	return func(p *Parser) {
		p.partial = true
	}
}

type Parser struct {
	file    string
	partial bool
	reader  io.Reader
	input   []byte
	entry   Rule
	rest    lexer.Tokenizer
}

func newParser(r io.Reader, entry Rule, opts []Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseProgramFrom(r io.Reader, opts ...Option) *Parser {
	return newParser(r, ParseProgram, opts)
}

func ParseExpressionFrom(r io.Reader, opts ...Option) *Parser {
	return newParser(r, ParseExpression, opts)
}

func ParseTypeFrom(r io.Reader, opts ...Option) *Parser {
	return newParser(r, ParseType, opts)
}

func ParseStmtFrom(r io.Reader, opts ...Option) *Parser {
	return newParser(r, ParseStmt, opts)
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish reads the whole input and parses it with the entry production.
func (p *Parser) Finish() (*ast.AST, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.name(), err)
	}

	t := lexer.NewTokenizer(p.input, p.file)
	b := ast.NewBuilder()
	root, err := p.entry(&t, b)
	if err != nil {
		return nil, err
	}
	p.rest = t

	if !p.partial {
		if tok, err := t.Peek(); err != io.EOF {
			return nil, unexpected(tok, err, []lexer.TokenKind{lexer.TokenEOF})
		}
	}
	return b.Finish(root), nil
}

// Offset is the byte offset at which the last successful Finish stopped.
func (p *Parser) Offset() int {
	return p.rest.Offset()
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.rest = lexer.Tokenizer{}
}

func (p *Parser) name() string {
	if p.file != "" {
		return p.file
	}
	return "input"
}

// expect consumes the current token if it has one of the given kinds.
func expect(t *lexer.Tokenizer, kinds ...lexer.TokenKind) (lexer.Token, error) {
	tok, err := t.Peek()
	if err == nil {
		for _, kind := range kinds {
			if tok.Kind == kind {
				t.Next()
				return tok, nil
			}
		}
	}
	return tok, unexpected(tok, err, kinds)
}

// peekKind is the kind of the current token, TokenEOF at the end of input and
// TokenError on a lexical error.
func peekKind(t *lexer.Tokenizer) lexer.TokenKind {
	tok, _ := t.Peek()
	return tok.Kind
}
