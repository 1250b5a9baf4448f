package format

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/osta-lang/osta/ast"
	"github.com/osta-lang/osta/lexer"
)

// TableEncoder writes the node arena as a flat table in creation order,
// including nodes that are not reachable from the root.
type TableEncoder struct {
	w io.Writer
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) Encode(tree *ast.AST) error {
	table := newTable(e.w, []string{"Ref", "Kind", "Parent", "Children", "Data"})
	for i, n := range tree.Nodes {
		ref := ast.NodeRef(i)
		var data []string
		for _, d := range n.Kind.DataRefs() {
			data = append(data, d.String()+"="+tree.Token(d).Literal)
		}
		table.Append([]string{
			ref.String(),
			n.Kind.String(),
			n.Parent.String(),
			joinRefs(n.Kind.Children()),
			strings.Join(data, " "),
		})
	}
	table.Render()
	return nil
}

// TokenTableEncoder writes the token stream of a source buffer.
type TokenTableEncoder struct {
	w io.Writer
}

func NewTokenTableEncoder(w io.Writer) *TokenTableEncoder {
	return &TokenTableEncoder{w: w}
}

// Encode drains a copy of t. Lexical errors are listed in place and do not
// stop the table.
func (e *TokenTableEncoder) Encode(t lexer.Tokenizer) error {
	table := newTable(e.w, []string{"Position", "Kind", "Literal", "Error"})
	for tok, err := range t.All() {
		var msg string
		if err != nil {
			msg = err.Error()
		}
		table.Append([]string{tok.Span.Start.String(), tok.Kind.String(), tok.Literal, msg})
	}
	table.Render()
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	return table
}

func joinRefs(refs []ast.NodeRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
