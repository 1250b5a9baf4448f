// Package grammar carries the EBNF description of osta's syntax. The
// alternatives of each production are listed in the order the parser tries
// them.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/ebnf"
)

// Start is the production a source file is parsed with.
const Start = "Program"

//go:embed osta.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses and verifies the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Check("osta.ebnf", bytes.NewReader(source), Start)
}

// Check parses the grammar read from r and, when start is not empty, verifies
// that every production is defined and reachable from start.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Productions lists the production names of g in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsLexical reports whether name is a lexical production, i.e. a token class
// rather than a syntactic construct.
func IsLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
