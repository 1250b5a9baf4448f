package parser

import (
	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// ifStmt = 'if' expression expression [ 'else' expression ]
func ParseIfStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenIf); err != nil {
		return ast.NullRef, err
	}
	cond, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	then, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	els := Optional(parseElse, t, b)
	return b.PushIfStmt(cond, then, els), nil
}

func parseElse(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenElse); err != nil {
		return ast.NullRef, err
	}
	return ParseExpression(t, b)
}

// whileStmt = 'while' expression expression
func ParseWhileStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenWhile); err != nil {
		return ast.NullRef, err
	}
	cond, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	body, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushWhile(cond, body), nil
}

// doWhileStmt = 'do' [ expression ] 'while' expression
func ParseDoWhileStmt(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenDo); err != nil {
		return ast.NullRef, err
	}
	body := Optional(ParseExpression, t, b)
	if _, err := expect(t, lexer.TokenWhile); err != nil {
		return ast.NullRef, err
	}
	cond, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushDoWhile(body, cond), nil
}
