package parser

import (
	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// type = derivedType [ '!' type ]
func ParseType(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	value, err := ParseDerivedType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if errType := Optional(parseErrorSuffix, t, b); !errType.IsNull() {
		return b.PushErrorType(value, errType), nil
	}
	return value, nil
}

func parseErrorSuffix(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenBang); err != nil {
		return ast.NullRef, err
	}
	return ParseType(t, b)
}

// derivedType = ( '(' [ tuple ] ')' | baseType ) { '*' | '?' | '[' [ expression ] ']' }
//
// An empty pair of parentheses is the void type.
func ParseDerivedType(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	var typ ast.NodeRef
	if _, ok := t.Check(lexer.TokenLParen); ok {
		inner := Optional(parseTuple, t, b)
		if _, err := expect(t, lexer.TokenRParen); err != nil {
			return ast.NullRef, err
		}
		typ = b.PushType(inner)
	} else {
		var err error
		if typ, err = ParseBaseType(t, b); err != nil {
			return ast.NullRef, err
		}
	}

	for {
		tok, err := t.Peek()
		if err != nil {
			return typ, nil
		}
		switch tok.Kind {
		case lexer.TokenStar, lexer.TokenQuestion:
			t.Next()
			typ = b.PushTypeModifier(typ, tok)
		case lexer.TokenLBracket:
			t.Next()
			length := Optional(ParseExpression, t, b)
			if _, err := expect(t, lexer.TokenRBracket); err != nil {
				return ast.NullRef, err
			}
			typ = b.PushArrayType(typ, length)
		default:
			return typ, nil
		}
	}
}

// tuple = type [ ',' tuple ]
func parseTuple(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	first, err := ParseType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next := ast.NullRef
	if _, ok := t.Check(lexer.TokenComma); ok {
		if next, err = parseTuple(t, b); err != nil {
			return ast.NullRef, err
		}
	}
	return b.PushTupleType(first, next), nil
}

// baseType = 'void' | genericType | Identifier
func ParseBaseType(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	return Choice(t, b, parseVoid, ParseGenericType, parseNamedType)
}

func parseVoid(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	if _, err := expect(t, lexer.TokenVoid); err != nil {
		return ast.NullRef, err
	}
	return b.PushType(ast.NullRef), nil
}

func parseNamedType(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	return b.PushType(name), nil
}

// genericType = Identifier '<' typeArgs '>'
func ParseGenericType(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	name, err := ParseIdentifier(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenLT); err != nil {
		return ast.NullRef, err
	}
	args, err := parseTypeArgs(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	if _, err := expect(t, lexer.TokenGT); err != nil {
		return ast.NullRef, err
	}
	return b.PushGenericType(name, args), nil
}

// typeArgs = type [ ',' typeArgs ]
func parseTypeArgs(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	typ, err := ParseType(t, b)
	if err != nil {
		return ast.NullRef, err
	}
	next := ast.NullRef
	if _, ok := t.Check(lexer.TokenComma); ok {
		if next, err = parseTypeArgs(t, b); err != nil {
			return ast.NullRef, err
		}
	}
	return b.PushGenericArg(typ, next), nil
}
