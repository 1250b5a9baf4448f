package lexer

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenError, "Error"},
		{TokenIdent, "Identifier"},
		{TokenInt, "Integer"},
		{TokenString, "String"},
		{TokenWhile, "while"},
		{TokenVoid, "void"},
		{TokenDo, "do"},
		{TokenLParen, "("},
		{TokenRBracket, "]"},
		{TokenAssign, "="},
		{TokenEQ, "=="},
		{TokenNE, "!="},
		{TokenLT, "<"},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"while", TokenWhile},
		{"if", TokenIf},
		{"else", TokenElse},
		{"return", TokenReturn},
		{"void", TokenVoid},
		{"do", TokenDo},
		{"foo", TokenIdent},
		{"While", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{Line: 3, Column: 7}, "3:7"},
		{Position{File: "main.osta", Line: 1, Column: 2}, "main.osta:1:2"},
	}

	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
