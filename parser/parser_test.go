package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

func TestFinish(t *testing.T) {
	tree, err := ParseProgramFrom(strings.NewReader("int main() { return 0; }"), WithFile("main.osta")).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if _, ok := tree.Node(tree.Root).Kind.(ast.Program); !ok {
		t.Errorf("root = %v, want Program", tree.Node(tree.Root).Kind)
	}
	if got := tree.Token(0).Span.Start.File; got != "main.osta" {
		t.Errorf("token file = %q, want main.osta", got)
	}
}

func TestFinishErrors(t *testing.T) {
	tests := []struct {
		name     string
		parser   *Parser
		kind     ErrorKind
		offset   int
		got      string
		expected []lexer.TokenKind
	}{
		{
			name:   "empty expression",
			parser: ParseExpressionFrom(strings.NewReader("")),
			kind:   UnexpectedEOF,
		},
		{
			name:     "trailing input",
			parser:   ParseExpressionFrom(strings.NewReader("1 2")),
			kind:     UnexpectedToken,
			offset:   2,
			got:      "2",
			expected: []lexer.TokenKind{lexer.TokenEOF},
		},
		{
			name:   "bad symbol",
			parser: ParseExpressionFrom(strings.NewReader("1 + @")),
			kind:   UnexpectedSymbol,
			offset: 4,
			got:    "@",
		},
		{
			name:     "missing semicolon in body",
			parser:   ParseProgramFrom(strings.NewReader("int main() { return 1 }")),
			kind:     UnexpectedToken,
			offset:   13,
			got:      "return",
			expected: []lexer.TokenKind{lexer.TokenRBrace},
		},
		{
			name:     "generic type falls back to a name",
			parser:   ParseTypeFrom(strings.NewReader("Map<K, V")),
			kind:     UnexpectedToken,
			offset:   3,
			got:      "<",
			expected: []lexer.TokenKind{lexer.TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Finish()
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Finish() error = %v, want *Error", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", perr.Kind, tt.kind)
			}
			if tt.kind == UnexpectedEOF {
				return
			}
			if perr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", perr.Offset, tt.offset)
			}
			if perr.Got.Literal != tt.got {
				t.Errorf("Got = %q, want %q", perr.Got.Literal, tt.got)
			}
			if tt.expected != nil {
				if diff := cmp.Diff(tt.expected, perr.Expected); diff != "" {
					t.Errorf("Expected mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestUnexpectedSymbolUnwraps(t *testing.T) {
	_, err := ParseStmtFrom(strings.NewReader("x + #;")).Finish()

	var symErr *lexer.SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("Finish() error = %v, want a wrapped *lexer.SymbolError", err)
	}
	if symErr.Offset != 4 {
		t.Errorf("Offset = %d, want 4", symErr.Offset)
	}
}

func TestWithPartial(t *testing.T) {
	p := ParseExpressionFrom(strings.NewReader("1 2"), WithPartial())
	tree, err := p.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(tree.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(tree.Nodes))
	}
	if p.Offset() != 2 {
		t.Errorf("Offset() = %d, want 2", p.Offset())
	}
}

func TestReset(t *testing.T) {
	p := ParseTypeFrom(strings.NewReader("Foo"))
	if _, err := p.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	p.Reset(strings.NewReader("void*"))
	tree, err := p.Finish()
	if err != nil {
		t.Fatalf("Finish() after Reset error = %v", err)
	}
	if _, ok := tree.Node(tree.Root).Kind.(ast.TypeModifier); !ok {
		t.Errorf("root = %v, want TypeModifier", tree.Node(tree.Root).Kind)
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := ParseExpressionFrom(strings.NewReader("1 2"), WithFile("a.osta")).Finish()
	if err == nil {
		t.Fatal("expected an error")
	}
	want := `a.osta:1:3: unexpected Integer "2", expected "EOF"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
