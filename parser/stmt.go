package parser

import (
	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// block = '{' [ stmtList ] '}'
func ParseBlock(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenLBrace); err != nil {
		return ast.NullRef, err
	}
	first := Optional(parseStmtList, t, b)
	if _, err := expect(t, lexer.TokenRBrace); err != nil {
		return ast.NullRef, err
	}
	return b.PushBlock(first), nil
}

// stmtList = stmt [ stmtList ]
func parseStmtList(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	stmt, err := ParseStmt(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next := Optional(parseStmtList, t, b)
	return b.PushStmt(stmt, next), nil
}

// stmt = returnStmt | ifStmt | whileStmt | doWhileStmt | varDecl | exprStmt
//
// The keyword-led statements are selected by their first token. Of the other
// two a declaration wins, so "a * b;" declares b as a pointer to a.
func ParseStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	switch peekKind(t) {
	case lexer.TokenReturn:
		return ParseReturnStmt(t, b)
	case lexer.TokenIf:
		return ParseIfStmt(t, b)
	case lexer.TokenWhile:
		return ParseWhileStmt(t, b)
	case lexer.TokenDo:
		return ParseDoWhileStmt(t, b)
	}
	return Choice(t, b, ParseVarDecl, ParseExprStmt)
}

// exprStmt = expression ';'
func ParseExprStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	expr, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenSemicolon); err != nil {
		return ast.NullRef, err
	}
	return b.PushExprStmt(expr), nil
}

// returnStmt = 'return' [ expression ] ';'
func ParseReturnStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenReturn); err != nil {
		return ast.NullRef, err
	}
	expr := Optional(ParseExpression, t, b)
	if _, err := expect(t, lexer.TokenSemicolon); err != nil {
		return ast.NullRef, err
	}
	return b.PushReturn(expr), nil
}

// varDecl = type Identifier [ '=' expression ] ';'
func ParseVarDecl(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	typ, err := ParseType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	init := ast.NullRef
	if _, ok := t.Check(lexer.TokenAssign); ok {
		if init, err = ParseExpression(t, b); err != nil {
			return ast.NullRef, err
		}
	}
	if _, err := expect(t, lexer.TokenSemicolon); err != nil {
		return ast.NullRef, err
	}
	return b.PushVarDecl(typ, name, init), nil
}
