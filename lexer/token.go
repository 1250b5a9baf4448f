package lexer

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenInt
	TokenString

	// Keywords
	TokenWhile
	TokenIf
	TokenElse
	TokenReturn
	TokenVoid
	TokenDo

	// Single character tokens
	TokenPlus
	TokenMinus
	TokenStar
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenAssign
	TokenBang
	TokenQuestion
	TokenComma
	TokenColon
	TokenLT
	TokenGT

	// Multiple character tokens
	TokenEQ
	TokenNE
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenIdent:     "Identifier",
	TokenInt:       "Integer",
	TokenString:    "String",
	TokenWhile:     "while",
	TokenIf:        "if",
	TokenElse:      "else",
	TokenReturn:    "return",
	TokenVoid:      "void",
	TokenDo:        "do",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSemicolon: ";",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenAssign:    "=",
	TokenBang:      "!",
	TokenQuestion:  "?",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenLT:        "<",
	TokenGT:        ">",
	TokenEQ:        "==",
	TokenNE:        "!=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Literal)
}

var keywords = map[string]TokenKind{
	"while":  TokenWhile,
	"if":     TokenIf,
	"else":   TokenElse,
	"return": TokenReturn,
	"void":   TokenVoid,
	"do":     TokenDo,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
