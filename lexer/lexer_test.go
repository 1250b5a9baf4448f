package lexer

import (
	"testing"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"while", []TokenKind{TokenWhile, TokenEOF}},
		{"if x 1 else 0", []TokenKind{TokenIf, TokenIdent, TokenInt, TokenElse, TokenInt, TokenEOF}},
		{"123", []TokenKind{TokenInt, TokenEOF}},
		{`"hello"`, []TokenKind{TokenString, TokenEOF}},
		{`"a \" b"`, []TokenKind{TokenString, TokenEOF}},
		{"// comment\nreturn", []TokenKind{TokenReturn, TokenEOF}},
		{"/* block */ do", []TokenKind{TokenDo, TokenEOF}},
		{"+ - * ; ,", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSemicolon, TokenComma, TokenEOF}},
		{"( ) { } [ ]", []TokenKind{TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket, TokenEOF}},
		{"= == ! != ? :", []TokenKind{TokenAssign, TokenEQ, TokenBang, TokenNE, TokenQuestion, TokenColon, TokenEOF}},
		{"< >", []TokenKind{TokenLT, TokenGT, TokenEOF}},
		{"void**", []TokenKind{TokenVoid, TokenStar, TokenStar, TokenEOF}},
		{"List<Foo>", []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenGT, TokenEOF}},
		{"foo @", []TokenKind{TokenIdent, TokenError, TokenEOF}},
		{`"open`, []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.osta")
			var got []TokenKind
			for {
				tok := lexer.NextToken()
				got = append(got, tok.Kind)
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("void main() {}"), "main.osta")
	pos := lexer.Position()

	if pos.File != "main.osta" {
		t.Errorf("File = %q, want %q", pos.File, "main.osta")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"while", TokenWhile},
		{"if", TokenIf},
		{"else", TokenElse},
		{"return", TokenReturn},
		{"void", TokenVoid},
		{"do", TokenDo},
		{"doing", TokenIdent},
		{"iffy", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.osta")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"camelCase",
		"SCREAMING_CASE",
		"with123Numbers",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.osta")
			tok := lexer.NextToken()
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("if\n  foo"), "test.osta")

	first := lexer.NextToken()
	if first.Span.Start.Line != 1 || first.Span.Start.Column != 1 {
		t.Errorf("first token at %v, want 1:1", first.Span.Start)
	}
	if first.Span.End.Offset != 2 {
		t.Errorf("first token ends at offset %d, want 2", first.Span.End.Offset)
	}

	second := lexer.NextToken()
	if second.Span.Start.Line != 2 || second.Span.Start.Column != 3 {
		t.Errorf("second token at %v, want 2:3", second.Span.Start)
	}
	if second.Span.Start.Offset != 5 {
		t.Errorf("second token offset = %d, want 5", second.Span.Start.Offset)
	}
}

func TestLexerErrorAdvances(t *testing.T) {
	lexer := NewLexer([]byte("@#x"), "test.osta")

	for i, want := range []string{"@", "#"} {
		tok := lexer.NextToken()
		if tok.Kind != TokenError {
			t.Fatalf("token %d: Kind = %v, want Error", i, tok.Kind)
		}
		if tok.Literal != want {
			t.Errorf("token %d: Literal = %q, want %q", i, tok.Literal, want)
		}
		if tok.Span.Start.Offset != i {
			t.Errorf("token %d: Offset = %d, want %d", i, tok.Span.Start.Offset, i)
		}
	}

	if tok := lexer.NextToken(); tok.Kind != TokenIdent {
		t.Errorf("Kind = %v, want Identifier", tok.Kind)
	}
}

func TestLexerUnterminatedComment(t *testing.T) {
	lexer := NewLexer([]byte("x /* never closed"), "test.osta")
	if tok := lexer.NextToken(); tok.Kind != TokenIdent {
		t.Fatalf("Kind = %v, want Identifier", tok.Kind)
	}
	if tok := lexer.NextToken(); tok.Kind != TokenEOF {
		t.Errorf("Kind = %v, want EOF", tok.Kind)
	}
}
