package parser

import (
	"io"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// program = { item } EOF
func ParseProgram(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	items, err := parseItems(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushProgram(items), nil
}

func parseItems(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := t.Peek(); err == io.EOF {
		return ast.NullRef, nil
	}
	item, err := ParseItem(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next, err := parseItems(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushItem(item, next), nil
}

// item = varDecl | funcDecl ';' | funcDef
//
// The alternatives part ways at the token after the name or after the
// parameter list, so their order only decides which error is reported. The
// function definition goes last so that errors inside a body surface.
func ParseItem(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return Choice(t, b, ParseVarDecl, parseFuncProto, ParseFuncDef)
}

func parseFuncProto(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	decl, err := ParseFuncDecl(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenSemicolon); err != nil {
		return ast.NullRef, err
	}
	return decl, nil
}

// funcDef = funcDecl block
func ParseFuncDef(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return Sequence(ParseFuncDecl, ParseBlock, (*ast.Builder).PushFuncDef)(t, b)
}

// funcDecl = type Identifier '(' [ params ] ')'
func ParseFuncDecl(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	ret, err := ParseType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenLParen); err != nil {
		return ast.NullRef, err
	}
	params := Optional(ParseParams, t, b)
	if _, err := expect(t, lexer.TokenRParen); err != nil {
		return ast.NullRef, err
	}
	return b.PushFuncDecl(ret, name, params), nil
}

// params = type Identifier [ ',' params ]
func ParseParams(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	typ, err := ParseType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next := ast.NullRef
	if _, ok := t.Check(lexer.TokenComma); ok {
		if next, err = ParseParams(t, b); err != nil {
			return ast.NullRef, err
		}
	}
	return b.PushParamDecl(typ, name, next), nil
}
