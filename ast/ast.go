package ast

import (
	"fmt"

	"github.com/osta-lang/osta/lexer"
)

// AST is the committed output of a parse.
type AST struct {
	Nodes []Node
	Data  []lexer.Token
	Root  NodeRef
}

func (a *AST) Node(ref NodeRef) Node {
	if int64(ref) >= int64(len(a.Nodes)) {
		panic(fmt.Sprintf("ast: node ref %s out of range (%d nodes)", ref, len(a.Nodes)))
	}
	return a.Nodes[ref]
}

func (a *AST) Token(ref DataRef) lexer.Token {
	if int64(ref) >= int64(len(a.Data)) {
		panic(fmt.Sprintf("ast: data ref %s out of range (%d entries)", ref, len(a.Data)))
	}
	return a.Data[ref]
}

func (a *AST) Children(ref NodeRef) []NodeRef {
	return a.Node(ref).Kind.Children()
}

// Text returns the literal of the first leaf token held by the node at ref,
// or "" when the node holds none.
func (a *AST) Text(ref NodeRef) string {
	data := a.Node(ref).Kind.DataRefs()
	if len(data) == 0 {
		return ""
	}
	return a.Token(data[0]).Literal
}

// Walk visits the tree in pre-order starting at the root. Returning false
// from fn skips the children of that node.
func (a *AST) Walk(fn func(ref NodeRef, depth int) bool) {
	if a.Root.IsNull() {
		return
	}
	a.walk(a.Root, 0, fn)
}

func (a *AST) walk(ref NodeRef, depth int, fn func(NodeRef, int) bool) {
	if !fn(ref, depth) {
		return
	}
	for _, child := range a.Children(ref) {
		a.walk(child, depth+1, fn)
	}
}

// Span covers the leaf tokens reachable from ref. ok is false when the
// subtree holds no tokens, e.g. a bare void type.
func (a *AST) Span(ref NodeRef) (span lexer.Span, ok bool) {
	var visit func(NodeRef)
	visit = func(r NodeRef) {
		for _, d := range a.Node(r).Kind.DataRefs() {
			tok := a.Token(d)
			if !ok || tok.Span.Start.Offset < span.Start.Offset {
				span.Start = tok.Span.Start
			}
			if !ok || tok.Span.End.Offset > span.End.Offset {
				span.End = tok.Span.End
			}
			ok = true
		}
		for _, child := range a.Children(r) {
			visit(child)
		}
	}
	visit(ref)
	return span, ok
}
