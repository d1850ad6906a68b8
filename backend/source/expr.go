package source

type (
	IntegerLit struct {
		Position Pos
		Value    int64
	}

	FloatLit struct {
		Position Pos
		Value    float64
	}

	CharLit struct {
		Position Pos
		Value    rune
	}

	// StringLit holds the decoded string value, without quotes.
	StringLit struct {
		Position Pos
		Value    string
	}

	BoolLit struct {
		Position Pos
		Value    bool
	}

	// DeclRef is a reference to a named declaration.
	DeclRef struct {
		Position Pos
		Name     string
		Type     *Type
	}

	// UnaryExpr is a unary operator application. Op is the source
	// spelling, e.g. "!", "-", "++".
	UnaryExpr struct {
		Position Pos
		Op       string
		Postfix  bool
		X        Expr
	}

	// BinaryExpr is a builtin binary operator application, including
	// assignment and compound assignment.
	BinaryExpr struct {
		Position Pos
		Op       string
		X        Expr
		Y        Expr
	}

	// MemberExpr is a data member access a.b.
	MemberExpr struct {
		Position Pos
		Base     Expr
		Field    *FieldDecl
	}

	// OperatorCallExpr is a call of an overloaded operator such as
	// operator<< or operator[]. Args include the left operand.
	OperatorCallExpr struct {
		Position Pos
		Name     string
		Args     []Expr
	}

	// MemberCallExpr is a method call obj.method(args).
	MemberCallExpr struct {
		Position Pos
		Object   Expr
		Method   string
		Args     []Expr
	}

	// CallExpr is a free function call. Callee is empty when the front end
	// could not resolve the called function.
	CallExpr struct {
		Position Pos
		Callee   string
		Args     []Expr
	}

	// OtherExpr is an expression kind the front end could not map.
	OtherExpr struct {
		Position Pos
		Kind     string
	}
)

func (x *IntegerLit) Pos() Pos       { return x.Position }
func (x *FloatLit) Pos() Pos         { return x.Position }
func (x *CharLit) Pos() Pos          { return x.Position }
func (x *StringLit) Pos() Pos        { return x.Position }
func (x *BoolLit) Pos() Pos          { return x.Position }
func (x *DeclRef) Pos() Pos          { return x.Position }
func (x *UnaryExpr) Pos() Pos        { return x.Position }
func (x *BinaryExpr) Pos() Pos       { return x.Position }
func (x *MemberExpr) Pos() Pos       { return x.Position }
func (x *OperatorCallExpr) Pos() Pos { return x.Position }
func (x *MemberCallExpr) Pos() Pos   { return x.Position }
func (x *CallExpr) Pos() Pos         { return x.Position }
func (x *OtherExpr) Pos() Pos        { return x.Position }

func (*IntegerLit) exprNode()       {}
func (*FloatLit) exprNode()         {}
func (*CharLit) exprNode()          {}
func (*StringLit) exprNode()        {}
func (*BoolLit) exprNode()          {}
func (*DeclRef) exprNode()          {}
func (*UnaryExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*MemberExpr) exprNode()       {}
func (*OperatorCallExpr) exprNode() {}
func (*MemberCallExpr) exprNode()   {}
func (*CallExpr) exprNode()         {}
func (*OtherExpr) exprNode()        {}
