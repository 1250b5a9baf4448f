package ast

import (
	"fmt"

	"github.com/osta-lang/osta/lexer"
)

// Builder appends nodes and leaf data to the arenas of one parse. Appends made
// after Checkpoint are provisional until the matching Commit, and Rollback
// discards them along with any parent links they patched into older nodes.
//
// Children are always pushed before the node that wraps them. A Builder is
// owned by a single parse and is not safe for concurrent use.
type Builder struct {
	nodes       []Node
	data        []lexer.Token
	checkpoints []checkpoint
	patches     []patch
}

type checkpoint struct {
	nodes   int
	data    int
	patches int
}

// patch records the Parent a node had before a provisional parent replaced it.
type patch struct {
	ref    NodeRef
	parent NodeRef
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Checkpoint opens a new innermost transaction.
func (b *Builder) Checkpoint() {
	b.checkpoints = append(b.checkpoints, checkpoint{
		nodes:   len(b.nodes),
		data:    len(b.data),
		patches: len(b.patches),
	})
}

// Commit closes the innermost transaction and keeps everything appended since
// it was opened. It panics when no checkpoint is open.
func (b *Builder) Commit() {
	b.pop("Commit")
	if len(b.checkpoints) == 0 {
		b.patches = b.patches[:0]
	}
}

// Rollback closes the innermost transaction and truncates both arenas to the
// lengths they had when it was opened. It panics when no checkpoint is open.
func (b *Builder) Rollback() {
	cp := b.pop("Rollback")
	for i := len(b.patches) - 1; i >= cp.patches; i-- {
		p := b.patches[i]
		if int(p.ref) < cp.nodes {
			b.nodes[p.ref].Parent = p.parent
		}
	}
	clear(b.nodes[cp.nodes:])
	clear(b.data[cp.data:])
	b.nodes = b.nodes[:cp.nodes]
	b.data = b.data[:cp.data]
	b.patches = b.patches[:cp.patches]
}

func (b *Builder) pop(op string) checkpoint {
	if len(b.checkpoints) == 0 {
		panic("ast: " + op + " without an open checkpoint")
	}
	cp := b.checkpoints[len(b.checkpoints)-1]
	b.checkpoints = b.checkpoints[:len(b.checkpoints)-1]
	return cp
}

// Depth is the number of open checkpoints.
func (b *Builder) Depth() int {
	return len(b.checkpoints)
}

func (b *Builder) NodeCount() int {
	return len(b.nodes)
}

func (b *Builder) DataCount() int {
	return len(b.data)
}

// Node returns the node at ref. It panics if ref is NullRef or past the end
// of the arena.
func (b *Builder) Node(ref NodeRef) Node {
	if int64(ref) >= int64(len(b.nodes)) {
		panic(fmt.Sprintf("ast: node ref %s out of range (%d nodes)", ref, len(b.nodes)))
	}
	return b.nodes[ref]
}

// Data returns the leaf token at ref. It panics if ref is past the end of the
// arena.
func (b *Builder) Data(ref DataRef) lexer.Token {
	if int64(ref) >= int64(len(b.data)) {
		panic(fmt.Sprintf("ast: data ref %s out of range (%d entries)", ref, len(b.data)))
	}
	return b.data[ref]
}

// Nodes returns the node arena. The slice is only valid until the next
// append or rollback.
func (b *Builder) Nodes() []Node {
	return b.nodes
}

// DataEntries returns the leaf data arena, with the same lifetime as Nodes.
func (b *Builder) DataEntries() []lexer.Token {
	return b.data
}

// Finish hands the arenas over as an AST rooted at root. Every checkpoint
// must have been closed.
func (b *Builder) Finish(root NodeRef) *AST {
	if len(b.checkpoints) != 0 {
		panic(fmt.Sprintf("ast: Finish with %d open checkpoints", len(b.checkpoints)))
	}
	if !root.IsNull() {
		b.Node(root)
	}
	return &AST{
		Nodes: append([]Node(nil), b.nodes...),
		Data:  append([]lexer.Token(nil), b.data...),
		Root:  root,
	}
}

func (b *Builder) pushData(tok lexer.Token) DataRef {
	ref := DataRef(len(b.data))
	b.data = append(b.data, tok)
	return ref
}

// push appends a node of the given kind and makes it the parent of each of
// its children.
func (b *Builder) push(kind NodeKind) NodeRef {
	children := kind.Children()
	for _, child := range children {
		b.Node(child)
	}
	for _, d := range kind.DataRefs() {
		b.Data(d)
	}

	ref := NodeRef(len(b.nodes))
	b.nodes = append(b.nodes, Node{Kind: kind, Parent: NullRef})

	mark := -1
	if n := len(b.checkpoints); n > 0 {
		mark = b.checkpoints[n-1].nodes
	}
	for _, child := range children {
		if int(child) < mark {
			b.patches = append(b.patches, patch{ref: child, parent: b.nodes[child].Parent})
		}
		b.nodes[child].Parent = ref
	}
	return ref
}

func (b *Builder) PushIdentifier(name lexer.Token) NodeRef {
	return b.push(Identifier{Name: b.pushData(name)})
}

func (b *Builder) PushInteger(value lexer.Token) NodeRef {
	return b.push(IntegerLiteral{Value: b.pushData(value)})
}

func (b *Builder) PushString(value lexer.Token) NodeRef {
	return b.push(StringLiteral{Value: b.pushData(value)})
}

func (b *Builder) PushTerm(child NodeRef) NodeRef {
	return b.push(Term{Child: child})
}

func (b *Builder) PushUnary(op lexer.Token, operand NodeRef) NodeRef {
	return b.push(Unary{Op: b.pushData(op), Operand: operand})
}

func (b *Builder) PushBinExpr(left NodeRef, op lexer.Token, right NodeRef) NodeRef {
	return b.push(BinaryExpr{Left: left, Op: b.pushData(op), Right: right})
}

func (b *Builder) PushAssign(target, value NodeRef) NodeRef {
	return b.push(Assign{Target: target, Value: value})
}

func (b *Builder) PushFuncCall(name, firstArg NodeRef) NodeRef {
	return b.push(FuncCallExpr{Name: name, FirstArg: firstArg})
}

func (b *Builder) PushFuncCallArg(expr, next NodeRef) NodeRef {
	return b.push(FuncCallArg{Expr: expr, Next: next})
}

func (b *Builder) PushBlock(firstStmt NodeRef) NodeRef {
	return b.push(Block{FirstStmt: firstStmt})
}

func (b *Builder) PushStmt(child, next NodeRef) NodeRef {
	return b.push(Stmt{Child: child, Next: next})
}

func (b *Builder) PushExprStmt(expr NodeRef) NodeRef {
	return b.push(ExprStmt{Expr: expr})
}

func (b *Builder) PushReturn(expr NodeRef) NodeRef {
	return b.push(ReturnStmt{Expr: expr})
}

func (b *Builder) PushVarDecl(typ, name, init NodeRef) NodeRef {
	return b.push(VarDecl{Type: typ, Name: name, Init: init})
}

func (b *Builder) PushIfStmt(cond, then, els NodeRef) NodeRef {
	return b.push(IfStmt{Cond: cond, Then: then, Else: els})
}

func (b *Builder) PushWhile(cond, body NodeRef) NodeRef {
	return b.push(WhileStmt{Cond: cond, Body: body})
}

func (b *Builder) PushDoWhile(body, cond NodeRef) NodeRef {
	return b.push(DoWhile{Body: body, Cond: cond})
}

func (b *Builder) PushType(child NodeRef) NodeRef {
	return b.push(Type{Child: child})
}

func (b *Builder) PushTypeModifier(child NodeRef, modifier lexer.Token) NodeRef {
	return b.push(TypeModifier{Child: child, Modifier: b.pushData(modifier)})
}

func (b *Builder) PushArrayType(child, length NodeRef) NodeRef {
	return b.push(ArrayType{Child: child, Length: length})
}

func (b *Builder) PushTupleType(first, next NodeRef) NodeRef {
	return b.push(TupleType{First: first, Next: next})
}

func (b *Builder) PushGenericType(name, firstArg NodeRef) NodeRef {
	return b.push(GenericType{Name: name, FirstArg: firstArg})
}

func (b *Builder) PushGenericArg(typ, next NodeRef) NodeRef {
	return b.push(GenericArg{Type: typ, Next: next})
}

func (b *Builder) PushErrorType(value, err NodeRef) NodeRef {
	return b.push(ErrorType{Value: value, Error: err})
}

func (b *Builder) PushParamDecl(typ, name, next NodeRef) NodeRef {
	return b.push(ParamDecl{Type: typ, Name: name, Next: next})
}

func (b *Builder) PushFuncDecl(returnType, name, params NodeRef) NodeRef {
	return b.push(FuncDecl{ReturnType: returnType, Name: name, Params: params})
}

func (b *Builder) PushFuncDef(decl, body NodeRef) NodeRef {
	return b.push(FuncDef{Decl: decl, Body: body})
}

func (b *Builder) PushItem(child, next NodeRef) NodeRef {
	return b.push(Item{Child: child, Next: next})
}

func (b *Builder) PushProgram(firstItem NodeRef) NodeRef {
	return b.push(Program{FirstItem: firstItem})
}
