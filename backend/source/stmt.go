package source

type (
	// CompoundStmt is a braced sequence of statements.
	CompoundStmt struct {
		Position Pos
		List     []Stmt
	}

	// IfStmt is a conditional. CondVar is set when the condition declares
	// a variable, as in if (int x = f()).
	IfStmt struct {
		Position Pos
		CondVar  *VarDecl
		Cond     Expr
		Then     Stmt
		Else     Stmt // or nil
	}

	WhileStmt struct {
		Position Pos
		CondVar  *VarDecl
		Cond     Expr
		Body     Stmt
	}

	// ForStmt is a classic three-clause loop. Any clause may be nil.
	ForStmt struct {
		Position Pos
		Init     Stmt
		Cond     Expr
		Post     Expr
		Body     Stmt
	}

	ReturnStmt struct {
		Position Pos
		Result   Expr // or nil
	}

	DoStmt struct {
		Position Pos
		Body     Stmt
		Cond     Expr
	}

	GotoStmt struct {
		Position Pos
		Label    string
	}

	LabelStmt struct {
		Position Pos
		Label    string
		Stmt     Stmt
	}

	BreakStmt struct {
		Position Pos
	}

	// DeclStmt declares one or more variables in a block.
	DeclStmt struct {
		Position Pos
		Decls    []Decl
	}

	// ExprStmt is an expression evaluated for its effect.
	ExprStmt struct {
		X Expr
	}

	// OtherStmt is a statement kind the front end could not map.
	OtherStmt struct {
		Position Pos
		Kind     string
	}
)

func (s *CompoundStmt) Pos() Pos { return s.Position }
func (s *IfStmt) Pos() Pos       { return s.Position }
func (s *WhileStmt) Pos() Pos    { return s.Position }
func (s *ForStmt) Pos() Pos      { return s.Position }
func (s *ReturnStmt) Pos() Pos   { return s.Position }
func (s *DoStmt) Pos() Pos       { return s.Position }
func (s *GotoStmt) Pos() Pos     { return s.Position }
func (s *LabelStmt) Pos() Pos    { return s.Position }
func (s *BreakStmt) Pos() Pos    { return s.Position }
func (s *DeclStmt) Pos() Pos     { return s.Position }
func (s *ExprStmt) Pos() Pos     { return s.X.Pos() }
func (s *OtherStmt) Pos() Pos    { return s.Position }

func (*CompoundStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()   {}
func (*DoStmt) stmtNode()       {}
func (*GotoStmt) stmtNode()     {}
func (*LabelStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*DeclStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
func (*OtherStmt) stmtNode()    {}
