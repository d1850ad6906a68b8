package lower

import (
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

// Message tags.
const (
	tagConditionVariable = "condition-variable"
	tagCompoundStmt      = "compoundStmt"
	tagDoWhile           = "do/while statement"
	tagBreak             = "break statement"
	tagLabel             = "label"
	tagGoto              = "goto"
	tagComma             = "comma operator"
	tagOperatorCall      = "operator call"
	tagFunctionCall      = "function call"
)

func (l *Lowerer) newID() int {
	id := l.nextID
	l.nextID++
	return id
}

// position converts a source position; unknown coordinates become -1.
func position(p source.Pos) model.Pos {
	if !p.IsValid() {
		return model.Pos{Line: -1, Column: -1}
	}
	col := p.Column
	if col <= 0 {
		col = -1
	}
	return model.Pos{Line: p.Line, Column: col}
}

func (l *Lowerer) literal(pos source.Pos, kind string, value any) *model.Literal {
	return &model.Literal{
		ID:    l.newID(),
		Pos:   position(pos),
		Type:  kind,
		Value: value,
	}
}

func (l *Lowerer) identifier(pos source.Pos, name string) *model.Identifier {
	return &model.Identifier{
		ID:    l.newID(),
		Pos:   position(pos),
		Type:  model.TypeIdentifier,
		Value: name,
	}
}

// block wraps already lowered statements, so its id follows theirs.
func (l *Lowerer) block(stmts []model.Stmt) *model.Block {
	if stmts == nil {
		stmts = []model.Stmt{}
	}
	return &model.Block{
		ID:         l.newID(),
		Statements: stmts,
	}
}

// binary combines lowered operands. pos may be nil.
func (l *Lowerer) binary(op string, left, right model.Expr, pos *model.Pos) *model.Binary {
	return &model.Binary{
		ID:    l.newID(),
		Type:  op,
		Left:  left,
		Right: right,
		Pos:   pos,
	}
}

func (l *Lowerer) message(kind, tag, description string, pos source.Pos) *model.Message {
	return &model.Message{
		ID:          l.newID(),
		Pos:         position(pos),
		Type:        kind,
		Value:       tag,
		Description: description,
	}
}

func (l *Lowerer) errorMessage(tag, description string, pos source.Pos) *model.Message {
	return l.message(model.TypeError, tag, description, pos)
}
