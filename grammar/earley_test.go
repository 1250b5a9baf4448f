package grammar

import (
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"

	"github.com/osta-lang/osta/lexer"
	"github.com/osta-lang/osta/parser"
)

func mustRecognizer(t *testing.T, src, start string) *Recognizer {
	t.Helper()
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	r, err := NewRecognizer(g, start)
	if err != nil {
		t.Fatalf("NewRecognizer() error = %v", err)
	}
	return r
}

func TestRecognizer(t *testing.T) {
	r := mustRecognizer(t, `
		List  = "(" [ Items ] ")" .
		Items = Item { "," Item } .
		Item  = identifier | integer | List .
		identifier = "a" … "z" .
		integer = "0" … "9" .
	`, "List")

	tests := []struct {
		src     string
		wantErr string
	}{
		{"()", ""},
		{"(a)", ""},
		{"(a, 1, (b, ()))", ""},
		{"(a,)", `1:4: unexpected ) ")"`},
		{"(a b)", `1:4: unexpected Identifier "b"`},
		{"(a", "unexpected end of input"},
		{"", "unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := r.Recognize(lexer.NewTokenizer([]byte(tt.src), ""))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Recognize() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Recognize() error = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestRecognizerNullableChain(t *testing.T) {
	r := mustRecognizer(t, `
		S = A B "+" .
		A = [ "-" ] .
		B = { "!" } .
	`, "S")

	for _, src := range []string{"+", "-+", "!!+", "-!+"} {
		if err := r.Recognize(lexer.NewTokenizer([]byte(src), "")); err != nil {
			t.Errorf("Recognize(%q) error = %v", src, err)
		}
	}
}

func TestRecognizerLexicalError(t *testing.T) {
	r := mustRecognizer(t, `S = { identifier } . identifier = "a" … "z" .`, "S")

	var symErr *lexer.SymbolError
	err := r.Recognize(lexer.NewTokenizer([]byte("a @"), ""))
	if err == nil {
		t.Fatal("Recognize() succeeded")
	}
	if e, ok := err.(*lexer.SymbolError); !ok {
		t.Errorf("error = %T, want %T", err, symErr)
	} else if e.Offset != 2 {
		t.Errorf("Offset = %d, want 2", e.Offset)
	}
}

func TestNewRecognizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start string
	}{
		{"missing start", `S = "a" .`, "T"},
		{"range in syntax", `S = "a" … "z" .`, "S"},
		{"unknown lexical", `S = word . word = "a" .`, "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ebnf.Parse("test.ebnf", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("parse grammar: %v", err)
			}
			if _, err := NewRecognizer(g, tt.start); err == nil {
				t.Error("NewRecognizer() succeeded")
			}
		})
	}
}

// The grammar and the parser must agree on which programs are valid.
func TestGrammarAgreesWithParser(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	r, err := NewRecognizer(g, Start)
	if err != nil {
		t.Fatalf("NewRecognizer() error = %v", err)
	}

	tests := []struct {
		src   string
		valid bool
	}{
		{"", true},
		{"int x;", true},
		{"void log(int x);", true},
		{"Map<K, V> m;", true},
		{"int* p = f(1, 2);", true},
		{"int add(int a, int b) { return a + b; }", true},
		{"int main() { if x { return 1; } else { return 0; } }", true},
		{"int main() { int i = 0; while i < 10 { i = i + 1; } do { f(i); } while i }", true},
		{"(int, bool)[4]! Err pair;", true},
		{"int x", false},
		{"int main() { return 1 }", false},
		{"int f(int a b);", false},
		{"x + 1;", false},
		{"int f() { 1 + ; }", false},
		{"int f(,);", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			grammarErr := r.Recognize(lexer.NewTokenizer([]byte(tt.src), ""))
			_, parseErr := parser.ParseProgramFrom(strings.NewReader(tt.src)).Finish()

			if (grammarErr == nil) != tt.valid {
				t.Errorf("grammar: valid = %v, want %v (%v)", grammarErr == nil, tt.valid, grammarErr)
			}
			if (parseErr == nil) != tt.valid {
				t.Errorf("parser: valid = %v, want %v (%v)", parseErr == nil, tt.valid, parseErr)
			}
		})
	}
}
