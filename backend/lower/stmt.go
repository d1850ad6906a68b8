package lower

import (
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

// Stmt lowers a statement into a flat statement list. A compound statement
// or a declaration group yields several nodes; a nil statement or a bare
// stream reference yields none.
func (l *Lowerer) Stmt(s source.Stmt) ([]model.Stmt, error) {
	switch s := s.(type) {
	case nil:
		return nil, nil

	case *source.CompoundStmt:
		stmts := []model.Stmt{}
		for _, child := range s.List {
			lowered, err := l.Stmt(child)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, lowered...)
		}
		return stmts, nil

	case *source.IfStmt:
		n, err := l.ifStmt(s)
		if err != nil {
			return nil, err
		}
		return []model.Stmt{n}, nil

	case *source.WhileStmt:
		n, err := l.whileStmt(s)
		if err != nil {
			return nil, err
		}
		return []model.Stmt{n}, nil

	case *source.ForStmt:
		n, err := l.forStmt(s)
		if err != nil {
			return nil, err
		}
		return []model.Stmt{n}, nil

	case *source.ReturnStmt:
		n := &model.Return{
			ID:   l.newID(),
			Pos:  position(s.Position),
			Type: model.TypeReturn,
		}
		if s.Result != nil {
			x, err := l.Expr(s.Result)
			if err != nil {
				return nil, err
			}
			n.Expression = x
		}
		return []model.Stmt{n}, nil

	case *source.DoStmt:
		return l.refuse(tagDoWhile, "Do/While statements are not allowed", s.Position), nil

	case *source.BreakStmt:
		return l.refuse(tagBreak, "Breaks are not allowed", s.Position), nil

	case *source.LabelStmt:
		return l.refuse(tagLabel, "Labels are not allowed", s.Position), nil

	case *source.GotoStmt:
		return l.refuse(tagGoto, "Goto is not allowed", s.Position), nil

	case *source.DeclStmt:
		stmts := make([]model.Stmt, 0, len(s.Decls))
		for _, decl := range s.Decls {
			n, err := l.Decl(decl)
			if err != nil {
				return nil, err
			}
			if n != nil {
				stmts = append(stmts, n)
			}
		}
		return stmts, nil

	case *source.ExprStmt:
		x, err := l.Expr(s.X)
		if err != nil {
			return nil, err
		}
		if x == nil {
			return nil, nil
		}
		return []model.Stmt{x}, nil

	case *source.OtherStmt:
		return nil, &UnsupportedError{Kind: s.Kind, Pos: s.Position}
	}

	return nil, &UnsupportedError{Kind: "statement", Pos: s.Pos()}
}

// refuse replaces a disallowed statement, without looking inside it.
func (l *Lowerer) refuse(tag, description string, pos source.Pos) []model.Stmt {
	return []model.Stmt{l.errorMessage(tag, description, pos)}
}

// body lowers a loop or branch body into a block.
func (l *Lowerer) body(s source.Stmt) (*model.Block, error) {
	stmts, err := l.Stmt(s)
	if err != nil {
		return nil, err
	}
	return l.block(stmts), nil
}

// condition lowers a loop or branch condition, unless it declares a
// variable.
func (l *Lowerer) condition(condVar *source.VarDecl, cond source.Expr, description string) (model.Expr, error) {
	if condVar != nil {
		return l.errorMessage(tagConditionVariable, description, condVar.Position), nil
	}
	return l.Expr(cond)
}

func (l *Lowerer) ifStmt(s *source.IfStmt) (*model.Conditional, error) {
	n := &model.Conditional{
		ID:   l.newID(),
		Pos:  position(s.Position),
		Type: model.TypeConditional,
	}

	cond, err := l.condition(s.CondVar, s.Cond,
		"Variable declarations are not allowed in if conditions")
	if err != nil {
		return nil, err
	}
	n.Condition = cond

	if n.Then, err = l.body(s.Then); err != nil {
		return nil, err
	}

	if s.Else != nil {
		if n.Else, err = l.body(s.Else); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (l *Lowerer) whileStmt(s *source.WhileStmt) (*model.While, error) {
	n := &model.While{
		ID:   l.newID(),
		Pos:  position(s.Position),
		Type: model.TypeWhile,
	}

	cond, err := l.condition(s.CondVar, s.Cond,
		"Variable declarations are not allowed in while conditions")
	if err != nil {
		return nil, err
	}
	n.Condition = cond

	if n.Block, err = l.body(s.Body); err != nil {
		return nil, err
	}

	return n, nil
}

func (l *Lowerer) forStmt(s *source.ForStmt) (*model.For, error) {
	n := &model.For{
		ID:   l.newID(),
		Pos:  position(s.Position),
		Type: model.TypeFor,
	}

	init, err := l.Stmt(s.Init)
	if err != nil {
		return nil, err
	}
	switch {
	case len(init) > 1:
		n.Init = l.errorMessage(tagCompoundStmt,
			"Compound Statements are not allowed in for loop init", s.Position)
	case len(init) == 1:
		n.Init = init[0]
	}

	if s.Cond != nil {
		if n.Condition, err = l.Expr(s.Cond); err != nil {
			return nil, err
		}
	}

	if s.Post != nil {
		if n.Post, err = l.Expr(s.Post); err != nil {
			return nil, err
		}
	}

	if n.Block, err = l.body(s.Body); err != nil {
		return nil, err
	}

	return n, nil
}
