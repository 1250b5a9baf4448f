package parser

import (
	"sync"

	"github.com/tliron/commonlog"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
	"github.com/osta-lang/osta/state"
)

var log = sync.OnceValue(func() commonlog.Logger {
	return commonlog.GetLogger("osta.parser")
})

// Rule is a grammar production. On success it has consumed its input from t
// and returns the node it pushed onto b. On failure the state of t and b is
// unspecified; wrap the call in Attempt, Optional or Choice to get it back.
type Rule func(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error)

// Cursor is the state threaded through speculative parses: a tokenizer
// position, which is forked by copying, and the shared arena.
type Cursor struct {
	Tokens  lexer.Tokenizer
	Builder *ast.Builder
}

// Speculate runs rule as a transaction. It opens a checkpoint, runs rule on a
// fork of the cursor's tokenizer, and then either commits and returns the
// advanced cursor or rolls back and returns the cursor it was given.
func Speculate(rule Rule) state.Fallible[Cursor, ast.NodeRef] {
	return func(c Cursor) (ast.NodeRef, Cursor, error) {
		b := c.Builder
		nodes, data := b.NodeCount(), b.DataCount()

		b.Checkpoint()
		fork := c.Tokens
		ref, err := rule(&fork, b)
		if err != nil {
			discarded, discardedData := b.NodeCount()-nodes, b.DataCount()-data
			b.Rollback()
			if l := log(); l.AllowLevel(commonlog.Debug) {
				l.Debugf("rollback at %s: discarded %d nodes, %d data: %s",
					c.Tokens.Position(), discarded, discardedData, err)
			}
			return ast.NullRef, c, err
		}
		b.Commit()
		return ref, Cursor{Tokens: fork, Builder: b}, nil
	}
}

// Attempt runs rule speculatively. On success t is moved to where the rule
// stopped. On failure neither t nor b shows any trace of the attempt.
func Attempt(rule Rule, t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
	ref, next, err := Speculate(rule)(Cursor{Tokens: *t, Builder: b})
	if err != nil {
		return ast.NullRef, err
	}
	*t = next.Tokens
	return ref, nil
}

// Optional is Attempt for a production that may be missing: a failure yields
// NullRef, with t and b left untouched.
func Optional(rule Rule, t *lexer.Tokenizer, b *ast.Builder) ast.NodeRef {
	ref, next := state.Optional(Speculate(rule))(Cursor{Tokens: *t, Builder: b})
	*t = next.Tokens
	return ref.Or(ast.NullRef)
}

// Choice attempts each alternative in order from the same position and keeps
// the first that succeeds. When all of them fail the error of the last one is
// returned.
func Choice(t *lexer.Tokenizer, b *ast.Builder, alts ...Rule) (ast.NodeRef, error) {
	attempts := make([]state.Fallible[Cursor, ast.NodeRef], len(alts))
	for i, alt := range alts {
		attempts[i] = Speculate(alt)
	}
	ref, next, err := state.Choice(attempts...)(Cursor{Tokens: *t, Builder: b})
	if err != nil {
		return ast.NullRef, err
	}
	*t = next.Tokens
	return ref, nil
}

// Sequence runs first and then second, both speculatively, and combines their
// results with join. Either both succeed or neither leaves a trace.
func Sequence(first, second Rule, join func(b *ast.Builder, first, second ast.NodeRef) ast.NodeRef) Rule {
	return func(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
		return Attempt(func(t *lexer.Tokenizer, b *ast.Builder) (ast.NodeRef, error) {
			pair, next, err := state.PairF(Speculate(first), Speculate(second))(Cursor{Tokens: *t, Builder: b})
			if err != nil {
				return ast.NullRef, err
			}
			*t = next.Tokens
			return join(b, pair.First, pair.Second), nil
		}, t, b)
	}
}
