package lower

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

func at(line, col int) source.Pos {
	return source.Pos{Line: line, Column: col}
}

func mpos(line, col int) model.Pos {
	return model.Pos{Line: line, Column: col}
}

var (
	intType    = &source.Type{Kind: source.Integer}
	voidType   = &source.Type{Kind: source.Void}
	ostream    = &source.Type{Kind: source.OStream, Name: "Record"}
	istream    = &source.Type{Kind: source.IStream, Name: "Record"}
	manipType  = &source.Type{Kind: source.StreamManipulator, Name: "FunctionProto"}
	pointType  = &source.Type{Kind: source.Record, Name: "Point"}
	vectorInts = &source.Type{Kind: source.Vector, Elem: intType}
)

func ident(name string, pos source.Pos) *source.DeclRef {
	return &source.DeclRef{Position: pos, Name: name, Type: intType}
}

func lit(v int64, pos source.Pos) *source.IntegerLit {
	return &source.IntegerLit{Position: pos, Value: v}
}

// decode round-trips v through JSON into generic values.
func decode(t *testing.T, v any) any {
	t.Helper()
	var buf bytes.Buffer
	if err := model.Encode(&buf, v, true); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var out any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return out
}

// walk calls fn for every JSON object below v, with the key it is stored
// under ("" for array elements and the root).
func walk(v any, key string, fn func(key string, obj map[string]any)) {
	switch v := v.(type) {
	case map[string]any:
		fn(key, v)
		for k, child := range v {
			walk(child, k, fn)
		}
	case []any:
		for _, child := range v {
			walk(child, key, fn)
		}
	}
}

func sampleProgram() *source.TranslationUnit {
	// struct Point { int x; int y; };
	// int sum(const vector<int>& xs);
	// int main() {
	//   int a = 1, b(2);
	//   vector<vector<int>> grid;
	//   for (int i = 0; i < 3; i++) {
	//     while (a < b) { a++; }
	//     cout << a << " " << endl;
	//   }
	//   cin >> a >> b;
	//   return a + sum(grid[0]);
	// }
	return &source.TranslationUnit{
		Decls: []source.Decl{
			&source.OtherDecl{Position: at(1, 1), Kind: "UsingDirectiveDecl"},
			&source.RecordDecl{
				Position: at(2, 1),
				Name:     "Point",
				Members: []source.Decl{
					&source.RecordDecl{Position: at(2, 1), Name: "Point", Implicit: true},
					&source.FieldDecl{Position: at(2, 16), Name: "x", Type: intType},
					&source.FieldDecl{Position: at(2, 23), Name: "y", Type: intType},
				},
			},
			&source.FuncDecl{
				Position: at(3, 1),
				Name:     "sum",
				Result:   intType,
				Params: []*source.VarDecl{{
					Position: at(3, 9),
					Name:     "xs",
					Type:     &source.Type{Kind: source.Vector, Elem: intType, Const: true, Reference: true},
					Param:    true,
				}},
			},
			&source.FuncDecl{
				Position: at(4, 1),
				Name:     "main",
				Result:   intType,
				Body: &source.CompoundStmt{List: []source.Stmt{
					&source.DeclStmt{Position: at(5, 3), Decls: []source.Decl{
						&source.VarDecl{Position: at(5, 3), Name: "a", Type: intType, Init: lit(1, at(5, 11))},
						&source.VarDecl{Position: at(5, 3), Name: "b", Type: intType, Init: lit(2, at(5, 16)), InitStyle: source.CallInit},
					}},
					&source.DeclStmt{Position: at(6, 3), Decls: []source.Decl{
						&source.VarDecl{Position: at(6, 3), Name: "grid", Type: &source.Type{Kind: source.Vector, Elem: vectorInts}},
					}},
					&source.ForStmt{
						Position: at(7, 3),
						Init: &source.DeclStmt{Position: at(7, 8), Decls: []source.Decl{
							&source.VarDecl{Position: at(7, 8), Name: "i", Type: intType, Init: lit(0, at(7, 16))},
						}},
						Cond: &source.BinaryExpr{Position: at(7, 19), Op: "<", X: ident("i", at(7, 19)), Y: lit(3, at(7, 23))},
						Post: &source.UnaryExpr{Position: at(7, 26), Op: "++", Postfix: true, X: ident("i", at(7, 26))},
						Body: &source.CompoundStmt{List: []source.Stmt{
							&source.WhileStmt{
								Position: at(8, 5),
								Cond:     &source.BinaryExpr{Position: at(8, 12), Op: "<", X: ident("a", at(8, 12)), Y: ident("b", at(8, 16))},
								Body: &source.CompoundStmt{List: []source.Stmt{
									&source.ExprStmt{X: &source.UnaryExpr{Position: at(8, 21), Op: "++", Postfix: true, X: ident("a", at(8, 21))}},
								}},
							},
							&source.ExprStmt{X: printChain(at(9, 5),
								ident("a", at(9, 13)),
								&source.StringLit{Position: at(9, 18), Value: " "},
								&source.DeclRef{Position: at(9, 25), Name: "endl", Type: manipType},
							)},
						}},
					},
					&source.ExprStmt{X: &source.OperatorCallExpr{
						Position: at(11, 3),
						Name:     "operator>>",
						Args: []source.Expr{
							&source.OperatorCallExpr{
								Position: at(11, 3),
								Name:     "operator>>",
								Args: []source.Expr{
									&source.DeclRef{Position: at(11, 3), Name: "cin", Type: istream},
									ident("a", at(11, 10)),
								},
							},
							ident("b", at(11, 15)),
						},
					}},
					&source.ReturnStmt{
						Position: at(12, 3),
						Result: &source.BinaryExpr{
							Position: at(12, 10),
							Op:       "+",
							X:        ident("a", at(12, 10)),
							Y: &source.CallExpr{
								Position: at(12, 14),
								Callee:   "sum",
								Args: []source.Expr{&source.OperatorCallExpr{
									Position: at(12, 18),
									Name:     "operator[]",
									Args: []source.Expr{
										&source.DeclRef{Position: at(12, 18), Name: "grid", Type: &source.Type{Kind: source.Vector, Elem: vectorInts}},
										lit(0, at(12, 23)),
									},
								}},
							},
						},
					},
				}},
			},
		},
	}
}

// printChain builds cout << args[0] << args[1] ... as the left-nested
// operator calls a front end produces.
func printChain(pos source.Pos, args ...source.Expr) *source.OperatorCallExpr {
	var x source.Expr = &source.DeclRef{Position: pos, Name: "cout", Type: ostream}
	for _, arg := range args {
		x = &source.OperatorCallExpr{
			Position: pos,
			Name:     "operator<<",
			Args:     []source.Expr{x, arg},
		}
	}
	return x.(*source.OperatorCallExpr)
}

func TestDocumentIDsAreUnique(t *testing.T) {
	l := New()
	doc, err := l.Document(sampleProgram())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	seen := map[float64]bool{}
	walk(decode(t, doc), "", func(_ string, obj map[string]any) {
		id, ok := obj["id"].(float64)
		if !ok {
			t.Errorf("node without id: %v", obj)
			return
		}
		if seen[id] {
			t.Errorf("duplicate id %v", id)
		}
		seen[id] = true
	})

	if len(seen) != l.NextID() {
		t.Errorf("found %d ids, allocated %d", len(seen), l.NextID())
	}
	if !seen[0] {
		t.Errorf("id 0 not used")
	}
}

func TestDocumentBlockShape(t *testing.T) {
	doc, err := New().Document(sampleProgram())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	walk(decode(t, doc), "", func(_ string, obj map[string]any) {
		stmts, ok := obj["statements"]
		if !ok {
			return
		}
		list, ok := stmts.([]any)
		if !ok {
			t.Fatalf("statements is %T, want array", stmts)
		}
		for i, s := range list {
			if _, ok := s.(map[string]any); !ok {
				t.Errorf("statements[%d] is %T, want object", i, s)
			}
		}
	})
}

func TestDocumentTopLevel(t *testing.T) {
	doc, err := New().Document(sampleProgram())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if doc.ID != 0 {
		t.Errorf("document id = %d, want 0", doc.ID)
	}

	var kinds []string
	for _, s := range doc.Statements {
		switch s := s.(type) {
		case *model.StructDecl:
			kinds = append(kinds, s.Type+" "+s.Name)
		case *model.FuncDecl:
			kinds = append(kinds, s.Type+" "+s.Name)
		default:
			kinds = append(kinds, "unexpected")
		}
	}
	want := []string{
		"struct-declaration Point",
		"function-declaration sum",
		"function-declaration main",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("top-level statements (-want +got):\n%s", diff)
	}

	main := doc.Statements[2].(*model.FuncDecl)
	if got := len(main.Block.Statements); got != 6 {
		t.Errorf("main has %d statements, want 6 (a, b, grid, for, read, return)", got)
	}
	read, ok := main.Block.Statements[4].(*model.FuncCall)
	if !ok || read.Name != "read" || len(read.Arguments) != 2 {
		t.Errorf("statement 4 = %#v, want read call with 2 arguments", main.Block.Statements[4])
	}
}

func TestDocumentUnsupported(t *testing.T) {
	tu := &source.TranslationUnit{Decls: []source.Decl{
		&source.FuncDecl{
			Position: at(1, 1),
			Name:     "f",
			Result:   voidType,
			Body: &source.CompoundStmt{List: []source.Stmt{
				&source.ReturnStmt{Position: at(2, 3)},
				&source.OtherStmt{Position: at(3, 3), Kind: "SwitchStmt"},
			}},
		},
	}}

	doc, err := New().Document(tu)
	if doc != nil {
		t.Errorf("Document returned a document on failure")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	var uerr *UnsupportedError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %T, want *UnsupportedError", err)
	}
	if uerr.Kind != "SwitchStmt" || uerr.Pos != at(3, 3) {
		t.Errorf("err = %+v", uerr)
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc, err := New().Document(&source.TranslationUnit{})
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	want := map[string]any{"id": float64(0), "statements": []any{}}
	if diff := cmp.Diff(want, decode(t, doc)); diff != "" {
		t.Errorf("document (-want +got):\n%s", diff)
	}
}
