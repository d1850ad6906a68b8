package lower

import (
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

// Decl lowers a declaration. Methods, implicit records and declarations
// without a schema counterpart produce no node.
func (l *Lowerer) Decl(d source.Decl) (model.Stmt, error) {
	switch d := d.(type) {
	case *source.FuncDecl:
		n, err := l.funcDecl(d)
		if err != nil {
			return nil, err
		}
		return n, nil

	case *source.VarDecl:
		n, err := l.varDecl(d)
		if err != nil {
			return nil, err
		}
		return n, nil

	case *source.RecordDecl:
		if d.Implicit {
			return nil, nil
		}
		return l.recordDecl(d), nil

	case *source.MethodDecl:
		l.logf("skipping method %s", d.Name)
		return nil, nil

	case *source.OtherDecl:
		l.logf("skipping %s", d.Kind)
		return nil, nil

	case *source.FieldDecl:
		return nil, &UnsupportedError{Kind: "field outside a record", Pos: d.Position}

	case nil:
		return nil, &UnsupportedError{Kind: "missing declaration"}
	}

	return nil, &UnsupportedError{Kind: "declaration", Pos: d.Pos()}
}

func (l *Lowerer) funcDecl(d *source.FuncDecl) (*model.FuncDecl, error) {
	n := &model.FuncDecl{
		ID:         l.newID(),
		Pos:        position(d.Position),
		Type:       model.TypeFuncDecl,
		Name:       d.Name,
		Parameters: []*model.VarDecl{},
	}

	n.ReturnType = l.Type(d.Result)

	for _, param := range d.Params {
		p, err := l.varDecl(param)
		if err != nil {
			return nil, err
		}
		n.Parameters = append(n.Parameters, p)
	}

	// A declaration without definition gets an empty block.
	var stmts []model.Stmt
	if d.Body != nil {
		var err error
		if stmts, err = l.Stmt(d.Body); err != nil {
			return nil, err
		}
	}
	n.Block = l.block(stmts)

	return n, nil
}

// varDecl lowers a variable or, when d.Param is set, a parameter, which
// carries no "type" discriminant.
func (l *Lowerer) varDecl(d *source.VarDecl) (*model.VarDecl, error) {
	n := &model.VarDecl{
		ID:  l.newID(),
		Pos: position(d.Position),
	}
	if !d.Param {
		n.Type = model.TypeVarDecl
	}
	n.Name = d.Name
	n.DataType = l.Type(d.Type)
	if d.Type != nil {
		n.IsReference = d.Type.Reference
		n.IsConst = d.Type.Const
	}

	if d.Init == nil || isAggregate(d.Type) {
		return n, nil
	}

	switch d.InitStyle {
	case source.CInit, source.CallInit:
		init, err := l.Expr(d.Init)
		if err != nil {
			return nil, err
		}
		n.Init = init
	case source.ListInit:
		l.logf("ignoring list initialization of %s", d.Name)
	}

	return n, nil
}

func (l *Lowerer) field(d *source.FieldDecl) *model.Field {
	n := &model.Field{
		ID:   l.newID(),
		Pos:  position(d.Position),
		Name: d.Name,
	}
	n.DataType = l.Type(d.Type)
	return n
}

// recordDecl lowers a struct; only its data members become attributes.
func (l *Lowerer) recordDecl(d *source.RecordDecl) *model.StructDecl {
	n := &model.StructDecl{
		ID:         l.newID(),
		Pos:        position(d.Position),
		Type:       model.TypeStructDecl,
		Name:       d.Name,
		Attributes: []*model.Field{},
	}

	for _, member := range d.Members {
		if f, ok := member.(*source.FieldDecl); ok {
			n.Attributes = append(n.Attributes, l.field(f))
		}
	}

	return n
}
