package format

import (
	"encoding/json"
	"io"

	"github.com/osta-lang/osta/ast"
)

// ASTJSONEncoder writes the tree reachable from the root as nested JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *ast.AST) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(tree *ast.AST) ([]byte, error) {
	if tree.Root.IsNull() {
		return []byte("null"), nil
	}
	return json.MarshalIndent(nodeToJSON(tree, tree.Root), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Ref      uint32         `json:"ref"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Token    string         `json:"token,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(tree *ast.AST, ref ast.NodeRef) *astJSONNode {
	jn := &astJSONNode{
		Kind:  tree.Node(ref).Kind.String(),
		Ref:   uint32(ref),
		Token: tree.Text(ref),
	}

	if span, ok := tree.Span(ref); ok {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Line: span.Start.Line, Column: span.Start.Column},
			End:   astJSONPosition{Line: span.End.Line, Column: span.End.Column},
		}
	}

	children := tree.Children(ref)
	if len(children) > 0 {
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(tree, child)
		}
	}

	return jn
}
