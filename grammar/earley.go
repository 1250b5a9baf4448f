package grammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/osta-lang/osta/lexer"
)

// lexicalTokens maps the lexical productions to the token kinds the lexer
// produces for them.
var lexicalTokens = map[string]lexer.TokenKind{
	"identifier": lexer.TokenIdent,
	"integer":    lexer.TokenInt,
	"string":     lexer.TokenString,
}

// symbol is a nonterminal when term is empty. Terminals are matched against
// the kind name of a token, so "while" matches the keyword and "Identifier"
// any identifier.
type symbol struct {
	name string
	term string
}

func (s symbol) terminal() bool {
	return s.term != ""
}

type rule struct {
	lhs string
	rhs []symbol
}

type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognizer decides whether a token stream is a sentence of a grammar. It
// is an Earley recognizer over the syntactic productions; lexical
// productions stand for single tokens.
type Recognizer struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	fresh    int
}

// NewRecognizer compiles the syntactic productions of g.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if g[start] == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	r := &Recognizer{
		start:    start,
		byLHS:    make(map[string][]int),
		nullable: make(map[string]bool),
	}
	for _, name := range Productions(g) {
		if IsLexical(name) {
			continue
		}
		prod := g[name]
		alts, ok := prod.Expr.(ebnf.Alternative)
		if !ok {
			alts = ebnf.Alternative{prod.Expr}
		}
		for _, alt := range alts {
			rhs, err := r.compile(alt)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			r.addRule(name, rhs)
		}
	}
	r.computeNullable()
	return r, nil
}

func (r *Recognizer) addRule(lhs string, rhs []symbol) {
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules))
	r.rules = append(r.rules, rule{lhs: lhs, rhs: rhs})
}

func (r *Recognizer) freshName(kind string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", kind, r.fresh)
}

// compile flattens x into a sequence of symbols, introducing helper
// nonterminals for alternatives, options and repetitions.
func (r *Recognizer) compile(x ebnf.Expression) ([]symbol, error) {
	switch x := x.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var seq []symbol
		for _, e := range x {
			part, err := r.compile(e)
			if err != nil {
				return nil, err
			}
			seq = append(seq, part...)
		}
		return seq, nil
	case ebnf.Alternative:
		name := r.freshName("alt")
		for _, e := range x {
			rhs, err := r.compile(e)
			if err != nil {
				return nil, err
			}
			r.addRule(name, rhs)
		}
		return []symbol{{name: name}}, nil
	case *ebnf.Group:
		return r.compile(x.Body)
	case *ebnf.Option:
		body, err := r.compile(x.Body)
		if err != nil {
			return nil, err
		}
		name := r.freshName("opt")
		r.addRule(name, nil)
		r.addRule(name, body)
		return []symbol{{name: name}}, nil
	case *ebnf.Repetition:
		body, err := r.compile(x.Body)
		if err != nil {
			return nil, err
		}
		name := r.freshName("rep")
		r.addRule(name, nil)
		r.addRule(name, append(body, symbol{name: name}))
		return []symbol{{name: name}}, nil
	case *ebnf.Name:
		if !IsLexical(x.String) {
			return []symbol{{name: x.String}}, nil
		}
		kind, ok := lexicalTokens[x.String]
		if !ok {
			return nil, fmt.Errorf("%s: no token for lexical production %s", x.Pos(), x.String)
		}
		return []symbol{{term: kind.String()}}, nil
	case *ebnf.Token:
		return []symbol{{term: x.String}}, nil
	}
	return nil, fmt.Errorf("%s: %T outside a lexical production", x.Pos(), x)
}

func (r *Recognizer) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, ru := range r.rules {
			if r.nullable[ru.lhs] {
				continue
			}
			empty := true
			for _, s := range ru.rhs {
				if s.terminal() || !r.nullable[s.name] {
					empty = false
					break
				}
			}
			if empty {
				r.nullable[ru.lhs] = true
				changed = true
			}
		}
	}
}

// Recognize reports whether the tokens of t form a sentence. The error names
// the first token that cannot be part of one.
func (r *Recognizer) Recognize(t lexer.Tokenizer) error {
	var tokens []lexer.Token
	for tok, err := range t.All() {
		if err != nil {
			return err
		}
		tokens = append(tokens, tok)
	}

	chart := make([]itemSet, len(tokens)+1)
	for _, ri := range r.byLHS[r.start] {
		chart[0].add(item{rule: ri})
	}

	for i := range chart {
		set := &chart[i]
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			ru := r.rules[it.rule]
			if it.dot == len(ru.rhs) {
				r.complete(chart, i, it)
				continue
			}
			next := ru.rhs[it.dot]
			if next.terminal() {
				if i < len(tokens) && tokens[i].Kind.String() == next.term {
					chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}
			for _, ri := range r.byLHS[next.name] {
				set.add(item{rule: ri, origin: i})
			}
			if r.nullable[next.name] {
				set.add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	n := len(tokens)
	for _, it := range chart[n].items {
		ru := r.rules[it.rule]
		if ru.lhs == r.start && it.origin == 0 && it.dot == len(ru.rhs) {
			return nil
		}
	}

	furthest := n
	for furthest > 0 && len(chart[furthest].items) == 0 {
		furthest--
	}
	if furthest < n {
		tok := tokens[furthest]
		return fmt.Errorf("%s: unexpected %s %q", tok.Span.Start, tok.Kind, tok.Literal)
	}
	return fmt.Errorf("unexpected end of input")
}

func (r *Recognizer) complete(chart []itemSet, i int, done item) {
	lhs := r.rules[done.rule].lhs
	origin := &chart[done.origin]
	for k := 0; k < len(origin.items); k++ {
		it := origin.items[k]
		ru := r.rules[it.rule]
		if it.dot < len(ru.rhs) && !ru.rhs[it.dot].terminal() && ru.rhs[it.dot].name == lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}
