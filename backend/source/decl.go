package source

// InitStyle is the syntax used to initialize a variable.
type InitStyle int

const (
	// CInit is copy initialization: int x = 1.
	CInit InitStyle = iota
	// CallInit is direct initialization: int x(1).
	CallInit
	// ListInit is brace initialization: int x{1}.
	ListInit
)

type (
	// FuncDecl is a free function declaration or definition.
	FuncDecl struct {
		Position Pos
		Name     string
		Result   *Type
		Params   []*VarDecl
		// Body is nil when the declaration is not a definition.
		Body *CompoundStmt
	}

	// VarDecl is a variable or a function parameter.
	VarDecl struct {
		Position  Pos
		Name      string
		Type      *Type
		Init      Expr
		InitStyle InitStyle
		Param     bool
	}

	// FieldDecl is a data member of a record.
	FieldDecl struct {
		Position Pos
		Name     string
		Type     *Type
	}

	// RecordDecl is a struct or class declaration.
	RecordDecl struct {
		Position Pos
		Name     string
		// Implicit is set on compiler-synthesized records, such as the
		// injected class name.
		Implicit bool
		Members  []Decl
	}

	// MethodDecl is a member function, constructor or destructor.
	MethodDecl struct {
		Position Pos
		Name     string
	}

	// OtherDecl is a declaration without a counterpart in the output
	// schema, such as a namespace or a using-directive.
	OtherDecl struct {
		Position Pos
		Kind     string
	}
)

func (d *FuncDecl) Pos() Pos   { return d.Position }
func (d *VarDecl) Pos() Pos    { return d.Position }
func (d *FieldDecl) Pos() Pos  { return d.Position }
func (d *RecordDecl) Pos() Pos { return d.Position }
func (d *MethodDecl) Pos() Pos { return d.Position }
func (d *OtherDecl) Pos() Pos  { return d.Position }

func (*FuncDecl) declNode()   {}
func (*VarDecl) declNode()    {}
func (*FieldDecl) declNode()  {}
func (*RecordDecl) declNode() {}
func (*MethodDecl) declNode() {}
func (*OtherDecl) declNode()  {}
