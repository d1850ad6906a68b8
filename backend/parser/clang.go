package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is matched by errors reporting a dump that is not a clang
// JSON AST.
var ErrMalformed = errors.New("malformed clang AST dump")

// ID is a clang node address, e.g. "0x55d0c8a4e2a8".
type ID string

// Kind is a clang node class name.
type Kind string

const (
	TranslationUnitDecl Kind = "TranslationUnitDecl"
	FunctionDecl        Kind = "FunctionDecl"
	ParmVarDecl         Kind = "ParmVarDecl"
	VarDecl             Kind = "VarDecl"
	FieldDecl           Kind = "FieldDecl"
	CXXRecordDecl       Kind = "CXXRecordDecl"
	RecordDecl          Kind = "RecordDecl"
	EnumDecl            Kind = "EnumDecl"
	CXXMethodDecl       Kind = "CXXMethodDecl"
	CXXConstructorDecl  Kind = "CXXConstructorDecl"
	CXXDestructorDecl   Kind = "CXXDestructorDecl"
	CXXConversionDecl   Kind = "CXXConversionDecl"

	CompoundStmt Kind = "CompoundStmt"
	DeclStmt     Kind = "DeclStmt"
	IfStmt       Kind = "IfStmt"
	WhileStmt    Kind = "WhileStmt"
	ForStmt      Kind = "ForStmt"
	DoStmt       Kind = "DoStmt"
	ReturnStmt   Kind = "ReturnStmt"
	BreakStmt    Kind = "BreakStmt"
	GotoStmt     Kind = "GotoStmt"
	LabelStmt    Kind = "LabelStmt"
	NullStmt     Kind = "NullStmt"

	IntegerLiteral         Kind = "IntegerLiteral"
	FloatingLiteral        Kind = "FloatingLiteral"
	CharacterLiteral       Kind = "CharacterLiteral"
	StringLiteral          Kind = "StringLiteral"
	CXXBoolLiteralExpr     Kind = "CXXBoolLiteralExpr"
	DeclRefExpr            Kind = "DeclRefExpr"
	UnaryOperator          Kind = "UnaryOperator"
	BinaryOperator         Kind = "BinaryOperator"
	CompoundAssignOperator Kind = "CompoundAssignOperator"
	MemberExpr             Kind = "MemberExpr"
	CallExpr               Kind = "CallExpr"
	CXXOperatorCallExpr    Kind = "CXXOperatorCallExpr"
	CXXMemberCallExpr      Kind = "CXXMemberCallExpr"
	CXXConstructExpr       Kind = "CXXConstructExpr"
	CXXDefaultArgExpr      Kind = "CXXDefaultArgExpr"

	ImplicitCastExpr         Kind = "ImplicitCastExpr"
	ParenExpr                Kind = "ParenExpr"
	ExprWithCleanups         Kind = "ExprWithCleanups"
	MaterializeTemporaryExpr Kind = "MaterializeTemporaryExpr"
	CXXBindTemporaryExpr     Kind = "CXXBindTemporaryExpr"
	ConstantExpr             Kind = "ConstantExpr"
	CStyleCastExpr           Kind = "CStyleCastExpr"
	CXXFunctionalCastExpr    Kind = "CXXFunctionalCastExpr"
	CXXStaticCastExpr        Kind = "CXXStaticCastExpr"
)

type IncludedFrom struct {
	File string `json:"file"`
}

// BareLoc is a single source location. clang omits file and line when they
// are unchanged from the previously printed location; Replay fills them in.
type BareLoc struct {
	Offset       int64         `json:"offset,omitempty"`
	File         string        `json:"file,omitempty"`
	Line         int           `json:"line,omitempty"`
	PresumedFile string        `json:"presumedFile,omitempty"`
	Col          int           `json:"col,omitempty"`
	TokLen       int           `json:"tokLen,omitempty"`
	IncludedFrom *IncludedFrom `json:"includedFrom,omitempty"`
}

// IsValid reports whether clang printed the location at all.
func (l *BareLoc) IsValid() bool {
	return l != nil && l.Col > 0
}

// Loc is either a bare location or, inside macro expansions, a pair of
// spelling and expansion locations.
type Loc struct {
	BareLoc
	SpellingLoc  *BareLoc `json:"spellingLoc,omitempty"`
	ExpansionLoc *BareLoc `json:"expansionLoc,omitempty"`
}

// Spelling returns the location the text was written at.
func (l *Loc) Spelling() *BareLoc {
	if l == nil {
		return nil
	}
	if l.SpellingLoc != nil {
		return l.SpellingLoc
	}
	return &l.BareLoc
}

// Expansion returns the location the text was expanded at.
func (l *Loc) Expansion() *BareLoc {
	if l == nil {
		return nil
	}
	if l.ExpansionLoc != nil {
		return l.ExpansionLoc
	}
	return &l.BareLoc
}

type Range struct {
	Begin Loc `json:"begin"`
	End   Loc `json:"end"`
}

// QualType is a type as clang prints it.
type QualType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType,omitempty"`
}

// Node is a node of clang's JSON AST dump.
type Node struct {
	ID                   ID              `json:"id,omitempty"`
	Kind                 Kind            `json:"kind,omitempty"`
	Loc                  *Loc            `json:"loc,omitempty"`
	Range                *Range          `json:"range,omitempty"`
	IsImplicit           bool            `json:"isImplicit,omitempty"`
	Name                 string          `json:"name,omitempty"`
	Type                 *QualType       `json:"type,omitempty"`
	TagUsed              string          `json:"tagUsed,omitempty"`
	ScopedEnumTag        string          `json:"scopedEnumTag,omitempty"`
	CompleteDefinition   bool            `json:"completeDefinition,omitempty"`
	Init                 string          `json:"init,omitempty"` // "c", "call" or "list"
	ReferencedDecl       *Node           `json:"referencedDecl,omitempty"`
	ReferencedMemberDecl ID              `json:"referencedMemberDecl,omitempty"`
	IsArrow              bool            `json:"isArrow,omitempty"`
	IsPostfix            bool            `json:"isPostfix,omitempty"`
	OpCode               string          `json:"opcode,omitempty"`
	CastKind             string          `json:"castKind,omitempty"`
	HasInit              bool            `json:"hasInit,omitempty"`
	HasVar               bool            `json:"hasVar,omitempty"`
	HasElse              bool            `json:"hasElse,omitempty"`
	Value                json.RawMessage `json:"value,omitempty"`
	Inner                []*Node         `json:"inner,omitempty"`
}

// IsNull reports whether n stands for an absent child, which clang prints
// as an empty object.
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == ""
}

// DecodeClangJSON decodes the output of clang -Xclang -ast-dump=json and
// resolves the locations clang elided.
func DecodeClangJSON(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.Kind != TranslationUnitDecl {
		return nil, fmt.Errorf("%w: root is %q, not %s", ErrMalformed, root.Kind, TranslationUnitDecl)
	}
	Replay(&root)
	return &root, nil
}

// Replay fills in the file and line of every location of the tree, in the
// order clang printed them.
func Replay(root *Node) {
	var r replayer
	r.node(root)
}

type replayer struct {
	file string
	line int
}

func (r *replayer) node(n *Node) {
	if n == nil {
		return
	}
	r.loc(n.Loc)
	if n.Range != nil {
		r.loc(&n.Range.Begin)
		r.loc(&n.Range.End)
	}
	for _, child := range n.Inner {
		r.node(child)
	}
}

func (r *replayer) loc(l *Loc) {
	if l == nil {
		return
	}
	if l.SpellingLoc != nil || l.ExpansionLoc != nil {
		r.bare(l.SpellingLoc)
		r.bare(l.ExpansionLoc)
		return
	}
	r.bare(&l.BareLoc)
}

func (r *replayer) bare(l *BareLoc) {
	if !l.IsValid() {
		return
	}
	if l.File != "" {
		r.file = l.File
	} else {
		l.File = r.file
	}
	if l.Line != 0 {
		r.line = l.Line
	} else {
		l.Line = r.line
	}
}

// inMainFile reports whether n starts in the main source file rather than
// in an included header or a compiler-generated buffer.
func inMainFile(n *Node) bool {
	var l *BareLoc
	switch {
	case n.Range != nil && n.Range.Begin.Expansion().IsValid():
		l = n.Range.Begin.Expansion()
	case n.Loc != nil:
		l = n.Loc.Expansion()
	}
	if !l.IsValid() || l.IncludedFrom != nil {
		return false
	}
	return l.File != "" && !strings.HasPrefix(l.File, "<")
}
