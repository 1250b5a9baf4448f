// Package ast holds the syntax tree of an osta program as two append-only
// arenas: structural nodes, and the leaf tokens they refer to.
package ast

import (
	"math"
	"strconv"
)

// NodeRef indexes the node arena.
type NodeRef uint32

// NullRef marks an absent child. It is never a valid index.
const NullRef NodeRef = math.MaxUint32

func (r NodeRef) IsNull() bool {
	return r == NullRef
}

func (r NodeRef) String() string {
	if r == NullRef {
		return "NULL"
	}
	return "#" + strconv.FormatUint(uint64(r), 10)
}

// DataRef indexes the leaf data arena.
type DataRef uint32

func (r DataRef) String() string {
	return "$" + strconv.FormatUint(uint64(r), 10)
}

// Node is one entry of the node arena. Parent is NullRef until the node is
// wrapped by another one.
type Node struct {
	Kind   NodeKind
	Parent NodeRef
}

// NodeKind is the construct a node stands for along with the refs of its
// children. Implementations are comparable values.
type NodeKind interface {
	String() string
	// Children lists the non-null node refs in source order.
	Children() []NodeRef
	// DataRefs lists the leaf data the node points at.
	DataRefs() []DataRef
	isNodeKind()
}

func refs(rs ...NodeRef) []NodeRef {
	out := make([]NodeRef, 0, len(rs))
	for _, r := range rs {
		if r != NullRef {
			out = append(out, r)
		}
	}
	return out
}

// Expressions

type Identifier struct {
	Name DataRef
}

type IntegerLiteral struct {
	Value DataRef
}

type StringLiteral struct {
	Value DataRef
}

// Term wraps a primary expression.
type Term struct {
	Child NodeRef
}

type Unary struct {
	Op      DataRef
	Operand NodeRef
}

type BinaryExpr struct {
	Left  NodeRef
	Op    DataRef
	Right NodeRef
}

type Assign struct {
	Target NodeRef
	Value  NodeRef
}

type FuncCallExpr struct {
	Name     NodeRef
	FirstArg NodeRef
}

// FuncCallArg is one link of a call's argument list.
type FuncCallArg struct {
	Expr NodeRef
	Next NodeRef
}

// Statements

type Block struct {
	FirstStmt NodeRef
}

// Stmt is one link of a block's statement list.
type Stmt struct {
	Child NodeRef
	Next  NodeRef
}

type ExprStmt struct {
	Expr NodeRef
}

type ReturnStmt struct {
	Expr NodeRef
}

type VarDecl struct {
	Type NodeRef
	Name NodeRef
	Init NodeRef
}

type IfStmt struct {
	Cond NodeRef
	Then NodeRef
	Else NodeRef
}

type WhileStmt struct {
	Cond NodeRef
	Body NodeRef
}

type DoWhile struct {
	Body NodeRef
	Cond NodeRef
}

// Types

// Type is a base type. Child is an Identifier, a TupleType chain, or NullRef
// for void.
type Type struct {
	Child NodeRef
}

// TypeModifier applies a pointer (*) or optional (?) modifier.
type TypeModifier struct {
	Child    NodeRef
	Modifier DataRef
}

type ArrayType struct {
	Child  NodeRef
	Length NodeRef
}

type TupleType struct {
	First NodeRef
	Next  NodeRef
}

type GenericType struct {
	Name     NodeRef
	FirstArg NodeRef
}

type GenericArg struct {
	Type NodeRef
	Next NodeRef
}

// ErrorType is an error union: Value!Error.
type ErrorType struct {
	Value NodeRef
	Error NodeRef
}

// Declarations

type ParamDecl struct {
	Type NodeRef
	Name NodeRef
	Next NodeRef
}

type FuncDecl struct {
	ReturnType NodeRef
	Name       NodeRef
	Params     NodeRef
}

type FuncDef struct {
	Decl NodeRef
	Body NodeRef
}

// Item is one link of a program's top-level declaration list.
type Item struct {
	Child NodeRef
	Next  NodeRef
}

type Program struct {
	FirstItem NodeRef
}

func (Identifier) String() string { return "Identifier" }
func (IntegerLiteral) String() string { return "IntegerLiteral" }
func (StringLiteral) String() string { return "StringLiteral" }
func (Term) String() string { return "Term" }
func (Unary) String() string { return "Unary" }
func (BinaryExpr) String() string { return "BinaryExpr" }
func (Assign) String() string { return "Assign" }
func (FuncCallExpr) String() string { return "FuncCallExpr" }
func (FuncCallArg) String() string { return "FuncCallArg" }
func (Block) String() string { return "Block" }
func (Stmt) String() string { return "Stmt" }
func (ExprStmt) String() string { return "ExprStmt" }
func (ReturnStmt) String() string { return "ReturnStmt" }
func (VarDecl) String() string { return "VarDecl" }
func (IfStmt) String() string { return "IfStmt" }
func (WhileStmt) String() string { return "WhileStmt" }
func (DoWhile) String() string { return "DoWhile" }
func (Type) String() string { return "Type" }
func (TypeModifier) String() string { return "TypeModifier" }
func (ArrayType) String() string { return "ArrayType" }
func (TupleType) String() string { return "TupleType" }
func (GenericType) String() string { return "GenericType" }
func (GenericArg) String() string { return "GenericArg" }
func (ErrorType) String() string { return "ErrorType" }
func (ParamDecl) String() string { return "ParamDecl" }
func (FuncDecl) String() string { return "FuncDecl" }
func (FuncDef) String() string { return "FuncDef" }
func (Item) String() string { return "Item" }
func (Program) String() string { return "Program" }

func (k Identifier) DataRefs() []DataRef { return []DataRef{k.Name} }
func (k IntegerLiteral) DataRefs() []DataRef { return []DataRef{k.Value} }
func (k StringLiteral) DataRefs() []DataRef { return []DataRef{k.Value} }
func (k Unary) DataRefs() []DataRef { return []DataRef{k.Op} }
func (k BinaryExpr) DataRefs() []DataRef { return []DataRef{k.Op} }
func (k TypeModifier) DataRefs() []DataRef { return []DataRef{k.Modifier} }

func (Term) DataRefs() []DataRef { return nil }
func (Assign) DataRefs() []DataRef { return nil }
func (FuncCallExpr) DataRefs() []DataRef { return nil }
func (FuncCallArg) DataRefs() []DataRef { return nil }
func (Block) DataRefs() []DataRef { return nil }
func (Stmt) DataRefs() []DataRef { return nil }
func (ExprStmt) DataRefs() []DataRef { return nil }
func (ReturnStmt) DataRefs() []DataRef { return nil }
func (VarDecl) DataRefs() []DataRef { return nil }
func (IfStmt) DataRefs() []DataRef { return nil }
func (WhileStmt) DataRefs() []DataRef { return nil }
func (DoWhile) DataRefs() []DataRef { return nil }
func (Type) DataRefs() []DataRef { return nil }
func (ArrayType) DataRefs() []DataRef { return nil }
func (TupleType) DataRefs() []DataRef { return nil }
func (GenericType) DataRefs() []DataRef { return nil }
func (GenericArg) DataRefs() []DataRef { return nil }
func (ErrorType) DataRefs() []DataRef { return nil }
func (ParamDecl) DataRefs() []DataRef { return nil }
func (FuncDecl) DataRefs() []DataRef { return nil }
func (FuncDef) DataRefs() []DataRef { return nil }
func (Item) DataRefs() []DataRef { return nil }
func (Program) DataRefs() []DataRef { return nil }

func (Identifier) Children() []NodeRef { return nil }
func (IntegerLiteral) Children() []NodeRef { return nil }
func (StringLiteral) Children() []NodeRef { return nil }
func (k Term) Children() []NodeRef { return refs(k.Child) }
func (k Unary) Children() []NodeRef { return refs(k.Operand) }
func (k BinaryExpr) Children() []NodeRef { return refs(k.Left, k.Right) }
func (k Assign) Children() []NodeRef { return refs(k.Target, k.Value) }
func (k FuncCallExpr) Children() []NodeRef { return refs(k.Name, k.FirstArg) }
func (k FuncCallArg) Children() []NodeRef { return refs(k.Expr, k.Next) }
func (k Block) Children() []NodeRef { return refs(k.FirstStmt) }
func (k Stmt) Children() []NodeRef { return refs(k.Child, k.Next) }
func (k ExprStmt) Children() []NodeRef { return refs(k.Expr) }
func (k ReturnStmt) Children() []NodeRef { return refs(k.Expr) }
func (k VarDecl) Children() []NodeRef { return refs(k.Type, k.Name, k.Init) }
func (k IfStmt) Children() []NodeRef { return refs(k.Cond, k.Then, k.Else) }
func (k WhileStmt) Children() []NodeRef { return refs(k.Cond, k.Body) }
func (k DoWhile) Children() []NodeRef { return refs(k.Body, k.Cond) }
func (k Type) Children() []NodeRef { return refs(k.Child) }
func (k TypeModifier) Children() []NodeRef { return refs(k.Child) }
func (k ArrayType) Children() []NodeRef { return refs(k.Child, k.Length) }
func (k TupleType) Children() []NodeRef { return refs(k.First, k.Next) }
func (k GenericType) Children() []NodeRef { return refs(k.Name, k.FirstArg) }
func (k GenericArg) Children() []NodeRef { return refs(k.Type, k.Next) }
func (k ErrorType) Children() []NodeRef { return refs(k.Value, k.Error) }
func (k ParamDecl) Children() []NodeRef { return refs(k.Type, k.Name, k.Next) }
func (k FuncDecl) Children() []NodeRef { return refs(k.ReturnType, k.Name, k.Params) }
func (k FuncDef) Children() []NodeRef { return refs(k.Decl, k.Body) }
func (k Item) Children() []NodeRef { return refs(k.Child, k.Next) }
func (k Program) Children() []NodeRef { return refs(k.FirstItem) }

func (Identifier) isNodeKind()     {}
func (IntegerLiteral) isNodeKind() {}
func (StringLiteral) isNodeKind()  {}
func (Term) isNodeKind()           {}
func (Unary) isNodeKind()          {}
func (BinaryExpr) isNodeKind()     {}
func (Assign) isNodeKind()         {}
func (FuncCallExpr) isNodeKind()   {}
func (FuncCallArg) isNodeKind()    {}
func (Block) isNodeKind()          {}
func (Stmt) isNodeKind()           {}
func (ExprStmt) isNodeKind()       {}
func (ReturnStmt) isNodeKind()     {}
func (VarDecl) isNodeKind()        {}
func (IfStmt) isNodeKind()         {}
func (WhileStmt) isNodeKind()      {}
func (DoWhile) isNodeKind()        {}
func (Type) isNodeKind()           {}
func (TypeModifier) isNodeKind()   {}
func (ArrayType) isNodeKind()      {}
func (TupleType) isNodeKind()      {}
func (GenericType) isNodeKind()    {}
func (GenericArg) isNodeKind()     {}
func (ErrorType) isNodeKind()      {}
func (ParamDecl) isNodeKind()      {}
func (FuncDecl) isNodeKind()       {}
func (FuncDef) isNodeKind()        {}
func (Item) isNodeKind()           {}
func (Program) isNodeKind()        {}
