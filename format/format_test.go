package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
	"github.com/osta-lang/osta/parser"
)

func mustParse(t *testing.T, src string) *ast.AST {
	t.Helper()
	tree, err := parser.ParseExpressionFrom(strings.NewReader(src)).Finish()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(mustParse(t, "1 + 2")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `BinaryExpr #4 "+"
  Term #1
    IntegerLiteral #0 "1"
  Term #3
    IntegerLiteral #2 "2"
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(mustParse(t, "f(x)")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var got astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Kind != "FuncCallExpr" || len(got.Children) != 2 {
		t.Fatalf("root = %s with %d children, want FuncCallExpr with 2", got.Kind, len(got.Children))
	}
	if got.Children[0].Token != "f" {
		t.Errorf("name token = %q, want f", got.Children[0].Token)
	}
	if got.Span == nil || got.Span.Start.Column != 1 || got.Span.End.Column != 4 {
		t.Errorf("span = %+v, want columns 1..4", got.Span)
	}
}

func TestASTJSONEncoderEmpty(t *testing.T) {
	text, err := NewASTJSONEncoder(nil).MarshalText(&ast.AST{Root: ast.NullRef})
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "null" {
		t.Errorf("MarshalText() = %s, want null", text)
	}
}

func TestTableEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableEncoder(&buf).Encode(mustParse(t, "1 + 2")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Parent", "BinaryExpr", "#1 #3", "$2=+", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
}

func TestTokenTableEncoder(t *testing.T) {
	var buf bytes.Buffer
	tokens := lexer.NewTokenizer([]byte("foo @"), "a.osta")
	if err := NewTokenTableEncoder(&buf).Encode(tokens); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Identifier", "a.osta:1:1", "unexpected symbol"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
}
