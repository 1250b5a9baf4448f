package lexer

import (
	"errors"
	"io"
	"testing"
)

func TestTokenizerIdentifiers(t *testing.T) {
	tokenizer := NewTokenizer([]byte("foo bar"), "")

	for _, want := range []string{"foo", "bar"} {
		tok, err := tokenizer.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tok.Kind != TokenIdent || tok.Literal != want {
			t.Errorf("Next() = %v %q, want Identifier %q", tok.Kind, tok.Literal, want)
		}
	}

	if _, err := tokenizer.Next(); err != io.EOF {
		t.Errorf("Next() at end error = %v, want io.EOF", err)
	}
	if _, err := tokenizer.Peek(); err != io.EOF {
		t.Errorf("Peek() at end error = %v, want io.EOF", err)
	}
}

func TestTokenizerSymbolError(t *testing.T) {
	tokenizer := NewTokenizer([]byte("foo @"), "")

	tok, err := tokenizer.Next()
	if err != nil || tok.Kind != TokenIdent {
		t.Fatalf("Next() = %v, %v; want Identifier", tok.Kind, err)
	}

	_, err = tokenizer.Next()
	var symErr *SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("Next() error = %v, want *SymbolError", err)
	}
	if symErr.Offset != 4 {
		t.Errorf("Offset = %d, want 4", symErr.Offset)
	}
	if symErr.Literal != "@" {
		t.Errorf("Literal = %q, want %q", symErr.Literal, "@")
	}

	if _, err := tokenizer.Next(); err != io.EOF {
		t.Errorf("Next() after error = %v, want io.EOF", err)
	}
}

func TestTokenizerPeekDoesNotConsume(t *testing.T) {
	tokenizer := NewTokenizer([]byte("if x"), "")

	first, _ := tokenizer.Peek()
	again, _ := tokenizer.Peek()
	if first != again {
		t.Errorf("Peek() changed between calls: %v, %v", first, again)
	}

	next, _ := tokenizer.Next()
	if next != first {
		t.Errorf("Next() = %v, want peeked %v", next, first)
	}
}

func TestTokenizerFork(t *testing.T) {
	original := NewTokenizer([]byte("a b c"), "")
	fork := original

	fork.Next()
	fork.Next()

	tok, _ := original.Peek()
	if tok.Literal != "a" {
		t.Errorf("original advanced with its fork: Peek() = %q, want %q", tok.Literal, "a")
	}
	tok, _ = fork.Peek()
	if tok.Literal != "c" {
		t.Errorf("fork Peek() = %q, want %q", tok.Literal, "c")
	}
}

func TestTokenizerCheck(t *testing.T) {
	tokenizer := NewTokenizer([]byte("else 1"), "")

	if _, ok := tokenizer.Check(TokenIf); ok {
		t.Fatal("Check(if) matched an else token")
	}
	if tokenizer.Offset() != 0 {
		t.Errorf("failed Check advanced to offset %d", tokenizer.Offset())
	}

	tok, ok := tokenizer.Check(TokenElse)
	if !ok || tok.Literal != "else" {
		t.Fatalf("Check(else) = %v, %v", tok, ok)
	}
	if tokenizer.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", tokenizer.Offset())
	}
}

func TestTokenizerAll(t *testing.T) {
	tokenizer := NewTokenizer([]byte("x @ 1"), "")

	var kinds []TokenKind
	var errs int
	for tok, err := range tokenizer.All() {
		kinds = append(kinds, tok.Kind)
		if err != nil {
			errs++
		}
	}

	want := []TokenKind{TokenIdent, TokenError, TokenInt}
	if len(kinds) != len(want) {
		t.Fatalf("All() yielded %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if errs != 1 {
		t.Errorf("All() yielded %d errors, want 1", errs)
	}

	if tok, _ := tokenizer.Peek(); tok.Literal != "x" {
		t.Errorf("All() advanced the receiver to %q", tok.Literal)
	}
}
