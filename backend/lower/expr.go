package lower

import (
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

const (
	printOperator     = "operator<<"
	readOperator      = "operator>>"
	subscriptOperator = "operator[]"

	printName = "print"
	readName  = "read"

	// endlName is the one stream manipulator that is kept, as a newline.
	endlName = "endl"

	subscriptOp = "[]"
	methodOp    = "."
	commaOp     = ","
)

var unaryOps = map[string]string{
	"!": "not",
	"-": "neg",
	"+": "pos",
}

var binaryOps = map[string]string{
	"||": "or",
	"&&": "and",
}

// Expr lowers an expression. It returns a nil node for stream objects,
// which only anchor I/O chains.
func (l *Lowerer) Expr(x source.Expr) (model.Expr, error) {
	switch x := x.(type) {
	case nil:
		return nil, &UnsupportedError{Kind: "missing expression"}

	case *source.IntegerLit:
		return l.literal(x.Position, model.TypeInt, x.Value), nil

	case *source.FloatLit:
		return l.literal(x.Position, model.TypeDouble, model.Double(x.Value)), nil

	case *source.CharLit:
		return l.literal(x.Position, model.TypeString, string(x.Value)), nil

	case *source.StringLit:
		return l.literal(x.Position, model.TypeString, x.Value), nil

	case *source.BoolLit:
		return l.literal(x.Position, model.TypeBool, x.Value), nil

	case *source.DeclRef:
		return l.declRef(x), nil

	case *source.UnaryExpr:
		return l.unary(x)

	case *source.BinaryExpr:
		return l.binaryExpr(x)

	case *source.MemberExpr:
		return l.member(x)

	case *source.OperatorCallExpr:
		return l.operatorCall(x)

	case *source.MemberCallExpr:
		return l.memberCall(x)

	case *source.CallExpr:
		return l.call(x)

	case *source.OtherExpr:
		return nil, &UnsupportedError{Kind: x.Kind, Pos: x.Position}
	}

	return nil, &UnsupportedError{Kind: "expression", Pos: x.Pos()}
}

func (l *Lowerer) declRef(x *source.DeclRef) model.Expr {
	if !x.Type.IsStream() {
		return l.identifier(x.Position, x.Name)
	}
	if x.Type.Kind == source.StreamManipulator && x.Name == endlName {
		return l.literal(x.Position, model.TypeString, "\n")
	}
	return nil
}

func (l *Lowerer) unary(x *source.UnaryExpr) (model.Expr, error) {
	op := x.Op
	if renamed, ok := unaryOps[op]; ok {
		op = renamed
	}
	if op == "++" || op == "--" {
		if x.Postfix {
			op += "_"
		} else {
			op = "_" + op
		}
	}

	operand, err := l.Expr(x.X)
	if err != nil {
		return nil, err
	}

	return &model.Unary{
		ID:         l.newID(),
		Pos:        position(x.Position),
		Type:       op,
		Expression: operand,
	}, nil
}

func (l *Lowerer) binaryExpr(x *source.BinaryExpr) (model.Expr, error) {
	op := x.Op
	if renamed, ok := binaryOps[op]; ok {
		op = renamed
	}

	if op == commaOp {
		return l.message(model.TypeWarning, tagComma,
			"We recommend not using the comma operator!", x.Position), nil
	}

	left, err := l.Expr(x.X)
	if err != nil {
		return nil, err
	}
	right, err := l.Expr(x.Y)
	if err != nil {
		return nil, err
	}

	pos := position(x.Position)
	return l.binary(op, left, right, &pos), nil
}

// member rewrites a.b into a["b"]: the field reference becomes a string
// operand keeping the field declaration's id and position.
func (l *Lowerer) member(x *source.MemberExpr) (model.Expr, error) {
	base, err := l.Expr(x.Base)
	if err != nil {
		return nil, err
	}
	if x.Field == nil {
		return nil, &UnsupportedError{Kind: "member without field", Pos: x.Position}
	}

	field := l.field(x.Field)
	key := &model.Literal{
		ID:    field.ID,
		Pos:   field.Pos,
		Type:  model.TypeString,
		Value: field.Name,
	}

	pos := position(x.Position)
	return l.binary(subscriptOp, base, key, &pos), nil
}

func (l *Lowerer) operatorCall(x *source.OperatorCallExpr) (model.Expr, error) {
	switch x.Name {
	case printOperator, readOperator:
		call, _, err := l.streamCall(x)
		if err != nil {
			return nil, err
		}
		return call, nil

	case subscriptOperator:
		if len(x.Args) != 2 {
			return nil, &UnsupportedError{Kind: subscriptOperator, Pos: x.Position}
		}
		left, err := l.Expr(x.Args[0])
		if err != nil {
			return nil, err
		}
		right, err := l.Expr(x.Args[1])
		if err != nil {
			return nil, err
		}
		return l.binary(subscriptOp, left, right, nil), nil
	}

	l.logf("operator call not defined: %s", x.Name)
	return l.errorMessage(tagOperatorCall, "Operator call not defined: "+x.Name, x.Position), nil
}

func isStreamOperator(name string) bool {
	return name == printOperator || name == readOperator
}

// streamCall lowers one link of a chain such as ((cout << a) << b) << c.
// The outermost link returns a single flat print or read call. Inner links,
// reached while the chain is active, return only their operands, so the
// nesting collapses. The stream at the far left contributes nothing.
func (l *Lowerer) streamCall(x *source.OperatorCallExpr) (*model.FuncCall, []model.Expr, error) {
	outermost := !l.chainActive
	if outermost {
		l.chainActive = true
		defer func() { l.chainActive = false }()
	}

	args := []model.Expr{}
	for i, arg := range x.Args {
		if i == 0 {
			if inner, ok := arg.(*source.OperatorCallExpr); ok && isStreamOperator(inner.Name) {
				_, partial, err := l.streamCall(inner)
				if err != nil {
					return nil, nil, err
				}
				args = partial
			}
			continue
		}

		n, err := l.chainOperand(arg)
		if err != nil {
			return nil, nil, err
		}
		if n != nil {
			args = append(args, n)
		}
	}

	if !outermost {
		return nil, args, nil
	}

	name := printName
	if x.Name == readOperator {
		name = readName
	}
	return &model.FuncCall{
		ID:        l.newID(),
		Pos:       position(x.Position),
		Type:      model.TypeFuncCall,
		Name:      name,
		Arguments: args,
	}, args, nil
}

// chainOperand lowers an operand of a chain. A stream expression inside the
// operand is not part of the enclosing chain.
func (l *Lowerer) chainOperand(x source.Expr) (model.Expr, error) {
	active := l.chainActive
	l.chainActive = false
	defer func() { l.chainActive = active }()
	return l.Expr(x)
}

func (l *Lowerer) memberCall(x *source.MemberCallExpr) (model.Expr, error) {
	call := &model.FuncCall{
		ID:   l.newID(),
		Pos:  position(x.Position),
		Type: model.TypeFuncCall,
		Name: x.Method,
	}
	args, err := l.arguments(x.Args)
	if err != nil {
		return nil, err
	}
	call.Arguments = args

	object, err := l.Expr(x.Object)
	if err != nil {
		return nil, err
	}

	pos := position(x.Position)
	return l.binary(methodOp, object, call, &pos), nil
}

func (l *Lowerer) call(x *source.CallExpr) (model.Expr, error) {
	if x.Callee == "" {
		l.logf("unknown function call at %d:%d", x.Position.Line, x.Position.Column)
		return l.errorMessage(tagFunctionCall, "Unknown function call", x.Position), nil
	}

	call := &model.FuncCall{
		ID:   l.newID(),
		Pos:  position(x.Position),
		Type: model.TypeFuncCall,
		Name: x.Callee,
	}
	args, err := l.arguments(x.Args)
	if err != nil {
		return nil, err
	}
	call.Arguments = args

	return call, nil
}

func (l *Lowerer) arguments(xs []source.Expr) ([]model.Expr, error) {
	args := make([]model.Expr, 0, len(xs))
	for _, x := range xs {
		n, err := l.Expr(x)
		if err != nil {
			return nil, err
		}
		if n != nil {
			args = append(args, n)
		}
	}
	return args, nil
}
