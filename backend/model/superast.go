package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SchemaVersion is the revision of the Superast schema produced by this module.
const SchemaVersion = "v1.0.0"

// Discriminants of the "type" key.
const (
	TypeConditional = "conditional"
	TypeWhile       = "while"
	TypeFor         = "for"
	TypeReturn      = "return"
	TypeFuncDecl    = "function-declaration"
	TypeVarDecl     = "variable-declaration"
	TypeStructDecl  = "struct-declaration"
	TypeFuncCall    = "function-call"
	TypeIdentifier  = "identifier"
	TypeInt         = "int"
	TypeDouble      = "double"
	TypeString      = "string"
	TypeBool        = "bool"
	TypeError       = "error"
	TypeWarning     = "warning"
)

// Node is implemented by every id-bearing node of the output tree.
type Node interface {
	NodeID() int
}

// Stmt is a node that may appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that may appear where a value is expected.
// Every expression may also stand as a statement.
type Expr interface {
	Stmt
	exprNode()
}

// Pos is the position of a node. Unknown coordinates are -1.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Document is the root of the output tree.
type Document struct {
	ID         int    `json:"id"`
	Statements []Stmt `json:"statements"`
}

// Block wraps a statement list.
type Block struct {
	ID         int    `json:"id"`
	Statements []Stmt `json:"statements"`
}

// TypeNode describes a data type. DataType is set on "vector" nodes.
type TypeNode struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	DataType *TypeNode `json:"data-type,omitempty"`
}

type Conditional struct {
	ID int `json:"id"`
	Pos
	Type      string `json:"type"`
	Condition Expr   `json:"condition"`
	Then      *Block `json:"then"`
	Else      *Block `json:"else,omitempty"`
}

type While struct {
	ID int `json:"id"`
	Pos
	Type      string `json:"type"`
	Condition Expr   `json:"condition"`
	Block     *Block `json:"block"`
}

type For struct {
	ID int `json:"id"`
	Pos
	Type      string `json:"type"`
	Init      Stmt   `json:"init,omitempty"`
	Condition Expr   `json:"condition,omitempty"`
	Post      Expr   `json:"post,omitempty"`
	Block     *Block `json:"block"`
}

type Return struct {
	ID int `json:"id"`
	Pos
	Type       string `json:"type"`
	Expression Expr   `json:"expression,omitempty"`
}

type FuncDecl struct {
	ID int `json:"id"`
	Pos
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	ReturnType *TypeNode  `json:"return-type"`
	Parameters []*VarDecl `json:"parameters"`
	Block      *Block     `json:"block"`
}

// VarDecl is a variable declaration. Function parameters share the
// shape but leave Type empty.
type VarDecl struct {
	ID int `json:"id"`
	Pos
	Type        string    `json:"type,omitempty"`
	Name        string    `json:"name"`
	DataType    *TypeNode `json:"data-type"`
	IsReference bool      `json:"is-reference"`
	IsConst     bool      `json:"is-const"`
	Init        Expr      `json:"init,omitempty"`
}

// Field is a struct attribute.
type Field struct {
	ID int `json:"id"`
	Pos
	Name     string    `json:"name"`
	DataType *TypeNode `json:"data-type"`
}

type StructDecl struct {
	ID int `json:"id"`
	Pos
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Attributes []*Field `json:"attributes"`
}

// Literal is an int, double, string or bool constant.
// A double value is held as a Double.
type Literal struct {
	ID int `json:"id"`
	Pos
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type Identifier struct {
	ID int `json:"id"`
	Pos
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Unary is a unary operator; Type holds the renamed operator.
type Unary struct {
	ID int `json:"id"`
	Pos
	Type       string `json:"type"`
	Expression Expr   `json:"expression"`
}

// Binary is a binary operator; Type holds the renamed operator, "[]" for
// indexed access or "." for a method call. Pos is nil for subscripts.
type Binary struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Left  Expr   `json:"left"`
	Right Expr   `json:"right"`
	*Pos
}

type FuncCall struct {
	ID int `json:"id"`
	Pos
	Type      string `json:"type"`
	Name      string `json:"name"`
	Arguments []Expr `json:"arguments"`
}

// Message is an error or warning standing in for a construct the schema
// does not support. It may appear wherever a statement or expression may.
type Message struct {
	ID int `json:"id"`
	Pos
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (n *Document) NodeID() int    { return n.ID }
func (n *Block) NodeID() int       { return n.ID }
func (n *TypeNode) NodeID() int    { return n.ID }
func (n *Conditional) NodeID() int { return n.ID }
func (n *While) NodeID() int       { return n.ID }
func (n *For) NodeID() int         { return n.ID }
func (n *Return) NodeID() int      { return n.ID }
func (n *FuncDecl) NodeID() int    { return n.ID }
func (n *VarDecl) NodeID() int     { return n.ID }
func (n *Field) NodeID() int       { return n.ID }
func (n *StructDecl) NodeID() int  { return n.ID }
func (n *Literal) NodeID() int     { return n.ID }
func (n *Identifier) NodeID() int  { return n.ID }
func (n *Unary) NodeID() int       { return n.ID }
func (n *Binary) NodeID() int      { return n.ID }
func (n *FuncCall) NodeID() int    { return n.ID }
func (n *Message) NodeID() int     { return n.ID }

func (*Conditional) stmtNode() {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*FuncDecl) stmtNode()    {}
func (*VarDecl) stmtNode()     {}
func (*StructDecl) stmtNode()  {}
func (*Literal) stmtNode()     {}
func (*Identifier) stmtNode()  {}
func (*Unary) stmtNode()       {}
func (*Binary) stmtNode()      {}
func (*FuncCall) stmtNode()    {}
func (*Message) stmtNode()     {}

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*FuncCall) exprNode()   {}
func (*Message) exprNode()    {}

// Double is a floating literal value. It always encodes with a fractional
// part so consumers can tell it from an int.
type Double float64

func (d Double) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("model: unsupported double value %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}
