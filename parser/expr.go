package parser

import (
	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// Binding power of the binary operators. Operators of equal power associate
// to the left.
var binaryPrecedence = map[lexer.TokenKind]int{
	lexer.TokenEQ:    1,
	lexer.TokenNE:    1,
	lexer.TokenLT:    1,
	lexer.TokenGT:    1,
	lexer.TokenPlus:  2,
	lexer.TokenMinus: 2,
	lexer.TokenStar:  3,
}

var primaryStart = []lexer.TokenKind{
	lexer.TokenInt,
	lexer.TokenString,
	lexer.TokenIdent,
	lexer.TokenLParen,
	lexer.TokenMinus,
	lexer.TokenBang,
}

// Integer
func ParseInteger(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	tok, err := expect(t, lexer.TokenInt)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushInteger(tok), nil
}

// Identifier
func ParseIdentifier(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	tok, err := expect(t, lexer.TokenIdent)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushIdentifier(tok), nil
}

// String
func ParseString(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	tok, err := expect(t, lexer.TokenString)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushString(tok), nil
}

// expression = assignment | binary
func ParseExpression(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return Choice(t, b, ParseAssignment, parseBinary)
}

// assignment = Identifier '=' expression
func ParseAssignment(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	target, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenAssign); err != nil {
		return ast.NullRef, err
	}
	value, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushAssign(target, value), nil
}

// binary = term { op term }
func parseBinary(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return parseBinaryFrom(t, b, 1)
}

func parseBinaryFrom(t *lexer.Tokenizer, b *ast.Builder, minPrec int) (ast.NodeRef, error) {
	left, err := ParseTerm(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	for {
		op, err := t.Peek()
		prec, ok := binaryPrecedence[op.Kind]
		if err != nil || !ok || prec < minPrec {
			return left, nil
		}
		t.Next()
		right, err := parseBinaryFrom(t, b, prec+1)
		if err != nil {
			return ast.NullRef, err
		}
		left = b.PushBinExpr(left, op, right)
	}
}

// term = funcCall | block | primary
func ParseTerm(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return Choice(t, b, ParseFuncCall, ParseBlock, parsePrimary)
}

// primary = Integer | String | Identifier | '(' expression ')' | ( '-' | '!' ) term
func parsePrimary(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	tok, err := t.Peek()
	if err != nil {
		return ast.NullRef, unexpected(tok, err, primaryStart)
	}

	var child ast.NodeRef
	switch tok.Kind {
	case lexer.TokenInt:
		t.Next()
		child = b.PushInteger(tok)
	case lexer.TokenString:
		t.Next()
		child = b.PushString(tok)
	case lexer.TokenIdent:
		t.Next()
		child = b.PushIdentifier(tok)
	case lexer.TokenLParen:
		t.Next()
		if child, err = ParseExpression(t, b); err != nil {
			return ast.NullRef, err
		}
		if _, err := expect(t, lexer.TokenRParen); err != nil {
			return ast.NullRef, err
		}
	case lexer.TokenMinus, lexer.TokenBang:
		t.Next()
		operand, err := ParseTerm(t, b)
		if err != nil {
			return ast.NullRef, err
		}
		child = b.PushUnary(tok, operand)
	default:
		return ast.NullRef, unexpected(tok, nil, primaryStart)
	}
	return b.PushTerm(child), nil
}

// funcCall = Identifier '(' [ args ] ')'
func ParseFuncCall(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenLParen); err != nil {
		return ast.NullRef, err
	}
	args := Optional(parseCallArgs, t, b)
	if _, err := expect(t, lexer.TokenRParen); err != nil {
		return ast.NullRef, err
	}
	return b.PushFuncCall(name, args), nil
}

// args = expression [ ',' args ]
func parseCallArgs(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	expr, err := ParseExpression(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next := ast.NullRef
	if _, ok := t.Check(lexer.TokenComma); ok {
		if next, err = parseCallArgs(t, b); err != nil {
			return ast.NullRef, err
		}
	}
	return b.PushFuncCallArg(expr, next), nil
}
