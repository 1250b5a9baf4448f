// Package format renders parse results for people and tools.
package format

import "github.com/osta-lang/osta/ast"

type Encoder interface {
	Encode(tree *ast.AST) error
}
