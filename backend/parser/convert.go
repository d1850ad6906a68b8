package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tenntenn/superast-cpp/backend/source"
)

// ParseClangJSON converts a clang JSON AST dump into a source tree holding
// the declarations of the main file.
func ParseClangJSON(data []byte) (*source.TranslationUnit, error) {
	root, err := DecodeClangJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Convert(root)
}

// Convert converts a decoded and replayed translation unit.
func Convert(root *Node) (*source.TranslationUnit, error) {
	c := &converter{
		records: Records{},
		fields:  map[ID]*source.FieldDecl{},
	}

	tu := &source.TranslationUnit{}
	for _, n := range root.Inner {
		if n.IsNull() || n.IsImplicit || !inMainFile(n) {
			continue
		}
		d, err := c.decl(n)
		if err != nil {
			return nil, err
		}
		tu.Decls = append(tu.Decls, d)
	}
	return tu, nil
}

type converter struct {
	records Records
	// fields indexes the data members of main file records, so that
	// member accesses can refer to their declaration.
	fields map[ID]*source.FieldDecl
}

// pos returns the spelling position of the start of n.
func pos(n *Node) source.Pos {
	var l *BareLoc
	switch {
	case n.Range != nil && n.Range.Begin.Spelling().IsValid():
		l = n.Range.Begin.Spelling()
	case n.Loc != nil:
		l = n.Loc.Spelling()
	}
	if !l.IsValid() {
		return source.Pos{}
	}
	return source.Pos{Line: l.Line, Column: l.Col}
}

func (c *converter) typeOf(n *Node) *source.Type {
	if n == nil || n.Type == nil {
		return nil
	}
	return ParseQualType(n.Type.QualType, n.Type.DesugaredQualType, c.records)
}

// resultType returns the result type of a function declaration, the part of
// its function type before the parameter list.
func (c *converter) resultType(n *Node) *source.Type {
	if n.Type == nil {
		return nil
	}
	result := func(s string) string {
		if i := topLevelIndex(s, '('); i >= 0 {
			return s[:i]
		}
		return s
	}
	qual := result(n.Type.QualType)
	desugared := ""
	if n.Type.DesugaredQualType != "" {
		desugared = result(n.Type.DesugaredQualType)
	}
	return ParseQualType(qual, desugared, c.records)
}

func (c *converter) decl(n *Node) (source.Decl, error) {
	switch n.Kind {
	case FunctionDecl:
		return c.funcDecl(n)
	case VarDecl, ParmVarDecl:
		return c.varDecl(n)
	case CXXRecordDecl, RecordDecl:
		return c.recordDecl(n)
	case FieldDecl:
		return c.field(n), nil
	case EnumDecl:
		c.enumDecl(n)
	case CXXMethodDecl, CXXConstructorDecl, CXXDestructorDecl, CXXConversionDecl:
		return &source.MethodDecl{Position: pos(n), Name: n.Name}, nil
	}
	return &source.OtherDecl{Position: pos(n), Kind: string(n.Kind)}, nil
}

func (c *converter) funcDecl(n *Node) (*source.FuncDecl, error) {
	d := &source.FuncDecl{
		Position: pos(n),
		Name:     n.Name,
		Result:   c.resultType(n),
	}
	for _, child := range n.Inner {
		switch child.Kind {
		case ParmVarDecl:
			p, err := c.varDecl(child)
			if err != nil {
				return nil, err
			}
			d.Params = append(d.Params, p)
		case CompoundStmt:
			body, err := c.compound(child)
			if err != nil {
				return nil, err
			}
			d.Body = body
		}
	}
	return d, nil
}

func (c *converter) varDecl(n *Node) (*source.VarDecl, error) {
	d := &source.VarDecl{
		Position: pos(n),
		Name:     n.Name,
		Type:     c.typeOf(n),
		Param:    n.Kind == ParmVarDecl,
	}

	switch n.Init {
	case "call":
		d.InitStyle = source.CallInit
	case "list":
		d.InitStyle = source.ListInit
	}

	if n.Init != "" {
		for _, child := range n.Inner {
			if !isExpr(child.Kind) {
				continue
			}
			init, err := c.expr(child)
			if err != nil {
				return nil, err
			}
			d.Init = init
			break
		}
	}
	return d, nil
}

func (c *converter) field(n *Node) *source.FieldDecl {
	f := &source.FieldDecl{
		Position: pos(n),
		Name:     n.Name,
		Type:     c.typeOf(n),
	}
	c.fields[n.ID] = f
	return f
}

// enumDecl registers an enumeration so uses of its name resolve. The
// declaration itself has no node of its own.
func (c *converter) enumDecl(n *Node) {
	if n.Name == "" {
		return
	}
	tag := "enum"
	if n.ScopedEnumTag != "" {
		tag += " " + n.ScopedEnumTag
	}
	c.records[n.Name] = tag
}

func (c *converter) recordDecl(n *Node) (*source.RecordDecl, error) {
	if n.Name != "" && !n.IsImplicit {
		c.records[n.Name] = n.TagUsed
	}

	d := &source.RecordDecl{
		Position: pos(n),
		Name:     n.Name,
		Implicit: n.IsImplicit,
	}
	for _, child := range n.Inner {
		if child.IsNull() {
			continue
		}
		m, err := c.decl(child)
		if err != nil {
			return nil, err
		}
		d.Members = append(d.Members, m)
	}
	return d, nil
}

func (c *converter) compound(n *Node) (*source.CompoundStmt, error) {
	s := &source.CompoundStmt{Position: pos(n)}
	for _, child := range n.Inner {
		stmt, err := c.stmt(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			s.List = append(s.List, stmt)
		}
	}
	return s, nil
}

// stmt converts a statement. Absent children and empty statements yield
// nil.
func (c *converter) stmt(n *Node) (source.Stmt, error) {
	if n.IsNull() {
		return nil, nil
	}

	switch n.Kind {
	case CompoundStmt:
		return c.compound(n)

	case NullStmt:
		return nil, nil

	case DeclStmt:
		s := &source.DeclStmt{Position: pos(n)}
		for _, child := range n.Inner {
			d, err := c.decl(child)
			if err != nil {
				return nil, err
			}
			s.Decls = append(s.Decls, d)
		}
		return s, nil

	case IfStmt:
		return c.ifStmt(n)

	case WhileStmt:
		return c.whileStmt(n)

	case ForStmt:
		return c.forStmt(n)

	case DoStmt:
		s := &source.DoStmt{Position: pos(n)}
		if len(n.Inner) == 2 {
			body, err := c.stmt(n.Inner[0])
			if err != nil {
				return nil, err
			}
			cond, err := c.expr(n.Inner[1])
			if err != nil {
				return nil, err
			}
			s.Body, s.Cond = body, cond
		}
		return s, nil

	case ReturnStmt:
		s := &source.ReturnStmt{Position: pos(n)}
		if len(n.Inner) > 0 {
			x, err := c.expr(n.Inner[0])
			if err != nil {
				return nil, err
			}
			s.Result = x
		}
		return s, nil

	case BreakStmt:
		return &source.BreakStmt{Position: pos(n)}, nil

	case GotoStmt:
		return &source.GotoStmt{Position: pos(n)}, nil

	case LabelStmt:
		s := &source.LabelStmt{Position: pos(n), Label: n.Name}
		if len(n.Inner) > 0 {
			inner, err := c.stmt(n.Inner[0])
			if err != nil {
				return nil, err
			}
			s.Stmt = inner
		}
		return s, nil
	}

	if isExpr(n.Kind) {
		x, err := c.expr(n)
		if err != nil {
			return nil, err
		}
		if x == nil {
			return nil, nil
		}
		return &source.ExprStmt{X: x}, nil
	}

	return &source.OtherStmt{Position: pos(n), Kind: string(n.Kind)}, nil
}

// children returns the non-null children of n, in order.
func children(n *Node) []*Node {
	var nodes []*Node
	for _, child := range n.Inner {
		if !child.IsNull() {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// conditionVar converts the variable declared by a condition, given as a
// declaration statement.
func (c *converter) conditionVar(n *Node) (*source.VarDecl, error) {
	if n.Kind != DeclStmt || len(n.Inner) == 0 {
		return nil, fmt.Errorf("%w: %s condition variable without declaration", ErrMalformed, n.Kind)
	}
	return c.varDecl(n.Inner[0])
}

func (c *converter) ifStmt(n *Node) (*source.IfStmt, error) {
	s := &source.IfStmt{Position: pos(n)}
	kids := children(n)
	if n.HasInit && len(kids) > 0 {
		// The init statement of if (init; cond) is not kept.
		kids = kids[1:]
	}
	if n.HasVar && len(kids) > 0 {
		v, err := c.conditionVar(kids[0])
		if err != nil {
			return nil, err
		}
		s.CondVar, kids = v, kids[1:]
	}

	want := 2
	if n.HasElse {
		want = 3
	}
	if len(kids) != want {
		return nil, fmt.Errorf("%w: IfStmt has %d children, want %d", ErrMalformed, len(kids), want)
	}

	var err error
	if s.Cond, err = c.expr(kids[0]); err != nil {
		return nil, err
	}
	if s.Then, err = c.stmt(kids[1]); err != nil {
		return nil, err
	}
	if n.HasElse {
		if s.Else, err = c.stmt(kids[2]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *converter) whileStmt(n *Node) (*source.WhileStmt, error) {
	s := &source.WhileStmt{Position: pos(n)}
	kids := children(n)
	if n.HasVar && len(kids) > 0 {
		v, err := c.conditionVar(kids[0])
		if err != nil {
			return nil, err
		}
		s.CondVar, kids = v, kids[1:]
	}
	if len(kids) != 2 {
		return nil, fmt.Errorf("%w: WhileStmt has %d children, want 2", ErrMalformed, len(kids))
	}

	var err error
	if s.Cond, err = c.expr(kids[0]); err != nil {
		return nil, err
	}
	if s.Body, err = c.stmt(kids[1]); err != nil {
		return nil, err
	}
	return s, nil
}

// forStmt converts a for loop. clang prints all five slots (init,
// condition variable, condition, increment, body), with {} for the absent
// ones.
func (c *converter) forStmt(n *Node) (*source.ForStmt, error) {
	if len(n.Inner) != 5 {
		return nil, fmt.Errorf("%w: ForStmt has %d children, want 5", ErrMalformed, len(n.Inner))
	}
	s := &source.ForStmt{Position: pos(n)}

	var err error
	if s.Init, err = c.stmt(n.Inner[0]); err != nil {
		return nil, err
	}
	if !n.Inner[2].IsNull() {
		if s.Cond, err = c.expr(n.Inner[2]); err != nil {
			return nil, err
		}
	}
	if !n.Inner[3].IsNull() {
		if s.Post, err = c.expr(n.Inner[3]); err != nil {
			return nil, err
		}
	}
	if s.Body, err = c.stmt(n.Inner[4]); err != nil {
		return nil, err
	}
	return s, nil
}

func isExpr(k Kind) bool {
	s := string(k)
	return strings.HasSuffix(s, "Expr") ||
		strings.HasSuffix(s, "Operator") ||
		strings.HasSuffix(s, "Literal") ||
		transparent(k)
}

// transparent reports whether an expression node only wraps its single
// operand, as implicit conversions and parentheses do.
func transparent(k Kind) bool {
	switch k {
	case ImplicitCastExpr, ParenExpr, ExprWithCleanups, MaterializeTemporaryExpr,
		CXXBindTemporaryExpr, ConstantExpr, CStyleCastExpr, CXXFunctionalCastExpr,
		CXXStaticCastExpr:
		return true
	}
	return false
}

// unwrap skips transparent wrappers and single-argument constructions.
func unwrap(n *Node) *Node {
	for !n.IsNull() {
		switch {
		case transparent(n.Kind) && len(n.Inner) == 1:
			n = n.Inner[0]
		case n.Kind == CXXConstructExpr && len(constructorArgs(n)) == 1:
			n = constructorArgs(n)[0]
		default:
			return n
		}
	}
	return n
}

// constructorArgs returns the arguments written in a construction,
// leaving out defaulted ones such as a string's allocator.
func constructorArgs(n *Node) []*Node {
	var args []*Node
	for _, a := range n.Inner {
		if !a.IsNull() && a.Kind != CXXDefaultArgExpr {
			args = append(args, a)
		}
	}
	return args
}

// expr converts an expression. A default argument or a construction
// without arguments yields nil.
func (c *converter) expr(n *Node) (source.Expr, error) {
	n = unwrap(n)
	if n.IsNull() {
		return nil, nil
	}
	p := pos(n)

	switch n.Kind {
	case IntegerLiteral:
		v, err := integerValue(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: integer literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		return &source.IntegerLit{Position: p, Value: v}, nil

	case FloatingLiteral:
		var text string
		if err := json.Unmarshal(n.Value, &text); err != nil {
			return nil, fmt.Errorf("%w: floating literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: floating literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		return &source.FloatLit{Position: p, Value: v}, nil

	case CharacterLiteral:
		var v int64
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: character literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		return &source.CharLit{Position: p, Value: rune(v)}, nil

	case StringLiteral:
		var text string
		if err := json.Unmarshal(n.Value, &text); err != nil {
			return nil, fmt.Errorf("%w: string literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		return &source.StringLit{Position: p, Value: unquote(text)}, nil

	case CXXBoolLiteralExpr:
		var v bool
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: bool literal at %d:%d: %v", ErrMalformed, p.Line, p.Column, err)
		}
		return &source.BoolLit{Position: p, Value: v}, nil

	case DeclRefExpr:
		ref := n.ReferencedDecl
		if ref == nil {
			return nil, fmt.Errorf("%w: DeclRefExpr at %d:%d without declaration", ErrMalformed, p.Line, p.Column)
		}
		t := c.typeOf(ref)
		if t == nil {
			t = c.typeOf(n)
		}
		return &source.DeclRef{Position: p, Name: ref.Name, Type: t}, nil

	case UnaryOperator:
		if len(n.Inner) != 1 {
			return nil, fmt.Errorf("%w: UnaryOperator at %d:%d has %d operands", ErrMalformed, p.Line, p.Column, len(n.Inner))
		}
		x, err := c.operand(n.Inner[0])
		if err != nil {
			return nil, err
		}
		return &source.UnaryExpr{Position: p, Op: n.OpCode, Postfix: n.IsPostfix, X: x}, nil

	case BinaryOperator, CompoundAssignOperator:
		if len(n.Inner) != 2 {
			return nil, fmt.Errorf("%w: %s at %d:%d has %d operands", ErrMalformed, n.Kind, p.Line, p.Column, len(n.Inner))
		}
		x, err := c.operand(n.Inner[0])
		if err != nil {
			return nil, err
		}
		y, err := c.operand(n.Inner[1])
		if err != nil {
			return nil, err
		}
		return &source.BinaryExpr{Position: p, Op: n.OpCode, X: x, Y: y}, nil

	case MemberExpr:
		if len(n.Inner) != 1 {
			return nil, fmt.Errorf("%w: MemberExpr at %d:%d has %d operands", ErrMalformed, p.Line, p.Column, len(n.Inner))
		}
		base, err := c.operand(n.Inner[0])
		if err != nil {
			return nil, err
		}
		field, ok := c.fields[n.ReferencedMemberDecl]
		if !ok {
			field = &source.FieldDecl{Name: n.Name}
		}
		return &source.MemberExpr{Position: p, Base: base, Field: field}, nil

	case CXXOperatorCallExpr:
		if len(n.Inner) == 0 {
			return nil, fmt.Errorf("%w: CXXOperatorCallExpr at %d:%d without callee", ErrMalformed, p.Line, p.Column)
		}
		args, err := c.args(n.Inner[1:])
		if err != nil {
			return nil, err
		}
		return &source.OperatorCallExpr{Position: p, Name: calleeName(n.Inner[0]), Args: args}, nil

	case CXXMemberCallExpr:
		if len(n.Inner) == 0 {
			return nil, fmt.Errorf("%w: CXXMemberCallExpr at %d:%d without callee", ErrMalformed, p.Line, p.Column)
		}
		callee := unwrap(n.Inner[0])
		if callee.IsNull() || callee.Kind != MemberExpr || len(callee.Inner) != 1 {
			return &source.OtherExpr{Position: p, Kind: string(n.Kind)}, nil
		}
		object, err := c.operand(callee.Inner[0])
		if err != nil {
			return nil, err
		}
		args, err := c.args(n.Inner[1:])
		if err != nil {
			return nil, err
		}
		return &source.MemberCallExpr{Position: p, Object: object, Method: callee.Name, Args: args}, nil

	case CallExpr:
		if len(n.Inner) == 0 {
			return nil, fmt.Errorf("%w: CallExpr at %d:%d without callee", ErrMalformed, p.Line, p.Column)
		}
		args, err := c.args(n.Inner[1:])
		if err != nil {
			return nil, err
		}
		return &source.CallExpr{Position: p, Callee: calleeName(n.Inner[0]), Args: args}, nil

	case CXXConstructExpr:
		if len(constructorArgs(n)) == 0 {
			return nil, nil
		}

	case CXXDefaultArgExpr:
		return nil, nil
	}

	return &source.OtherExpr{Position: p, Kind: string(n.Kind)}, nil
}

// operand converts an expression that must be present.
func (c *converter) operand(n *Node) (source.Expr, error) {
	x, err := c.expr(n)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return &source.OtherExpr{Position: pos(n), Kind: string(n.Kind)}, nil
	}
	return x, nil
}

func (c *converter) args(nodes []*Node) ([]source.Expr, error) {
	var args []source.Expr
	for _, n := range nodes {
		x, err := c.expr(n)
		if err != nil {
			return nil, err
		}
		if x != nil {
			args = append(args, x)
		}
	}
	return args, nil
}

// calleeName returns the name of the function a callee expression refers
// to, or "" when it is not a plain function reference.
func calleeName(n *Node) string {
	n = unwrap(n)
	if n.IsNull() || n.Kind != DeclRefExpr || n.ReferencedDecl == nil {
		return ""
	}
	switch n.ReferencedDecl.Kind {
	case FunctionDecl, CXXMethodDecl:
		return n.ReferencedDecl.Name
	}
	return ""
}

func integerValue(raw json.RawMessage) (int64, error) {
	// clang prints integer values as strings to keep their full width.
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, err
		}
		return v, nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// unquote decodes the source spelling of a string literal.
func unquote(text string) string {
	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	text = strings.TrimPrefix(text, `"`)
	return strings.TrimSuffix(text, `"`)
}
