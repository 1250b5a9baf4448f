package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/osta-lang/osta/ast"
)

// TreeEncoder writes one line per node, indented by depth.
type TreeEncoder struct {
	w      io.Writer
	indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, indent: "  "}
}

func (e *TreeEncoder) Encode(tree *ast.AST) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(tree *ast.AST) ([]byte, error) {
	var sb strings.Builder
	tree.Walk(func(ref ast.NodeRef, depth int) bool {
		sb.WriteString(strings.Repeat(e.indent, depth))
		fmt.Fprintf(&sb, "%s %s", tree.Node(ref).Kind, ref)
		if text := tree.Text(ref); text != "" {
			fmt.Fprintf(&sb, " %q", text)
		}
		sb.WriteByte('\n')
		return true
	})
	return []byte(sb.String()), nil
}
