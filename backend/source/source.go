// Package source defines the type-resolved syntax tree consumed by the
// lowering engine. The tree is produced by a front end (see package parser)
// and is never modified after construction.
package source

// Pos is a position in the main source file.
// The zero value means the position is unknown.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Node is implemented by every node of the source tree.
type Node interface {
	Pos() Pos
}

// Decl is a declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TranslationUnit is the root of a source tree.
type TranslationUnit struct {
	Decls []Decl
}
