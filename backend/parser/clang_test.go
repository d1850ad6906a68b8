package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReplay(t *testing.T) {
	// Locations as clang prints them: file and line only where they change.
	const dump = `{
	  "kind": "TranslationUnitDecl",
	  "loc": {},
	  "range": {"begin": {}, "end": {}},
	  "inner": [
	    {
	      "kind": "VarDecl",
	      "loc": {"offset": 10, "file": "/usr/include/x.h", "line": 3, "col": 5, "includedFrom": {"file": "a.cpp"}},
	      "range": {"begin": {"offset": 6, "col": 1, "includedFrom": {"file": "a.cpp"}}, "end": {"offset": 10, "col": 5, "includedFrom": {"file": "a.cpp"}}}
	    },
	    {
	      "kind": "FunctionDecl",
	      "loc": {"offset": 24, "file": "a.cpp", "line": 2, "col": 5},
	      "range": {"begin": {"offset": 20, "col": 1}, "end": {"offset": 60, "line": 5, "col": 1}},
	      "inner": [
	        {
	          "kind": "CompoundStmt",
	          "range": {"begin": {"offset": 31, "line": 2, "col": 12}, "end": {"offset": 60, "line": 5, "col": 1}},
	          "inner": [
	            {
	              "kind": "IntegerLiteral",
	              "range": {
	                "begin": {
	                  "spellingLoc": {"offset": 8, "line": 1, "col": 9},
	                  "expansionLoc": {"offset": 40, "line": 3, "col": 10}
	                },
	                "end": {
	                  "spellingLoc": {"offset": 8, "line": 1, "col": 9},
	                  "expansionLoc": {"offset": 40, "line": 3, "col": 10}
	                }
	              }
	            },
	            {"kind": "BreakStmt", "range": {"begin": {"offset": 50, "line": 4, "col": 3}, "end": {"offset": 50, "col": 3}}}
	          ]
	        }
	      ]
	    }
	  ]
	}`

	root, err := DecodeClangJSON(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("DecodeClangJSON: %v", err)
	}

	header, fn := root.Inner[0], root.Inner[1]
	body := fn.Inner[0]
	lit, brk := body.Inner[0], body.Inner[1]

	type loc struct {
		File string
		Line int
		Col  int
	}
	of := func(l *BareLoc) loc { return loc{l.File, l.Line, l.Col} }

	got := map[string]loc{
		"header begin":      of(header.Range.Begin.Spelling()),
		"function begin":    of(fn.Range.Begin.Spelling()),
		"literal spelling":  of(lit.Range.Begin.Spelling()),
		"literal expansion": of(lit.Range.Begin.Expansion()),
		"break end":         of(brk.Range.End.Spelling()),
	}
	want := map[string]loc{
		"header begin":      {"/usr/include/x.h", 3, 1},
		"function begin":    {"a.cpp", 2, 1},
		"literal spelling":  {"a.cpp", 1, 9},
		"literal expansion": {"a.cpp", 3, 10},
		"break end":         {"a.cpp", 4, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replayed locations (-want +got):\n%s", diff)
	}

	if inMainFile(header) {
		t.Errorf("declaration from an included header is in the main file")
	}
	if !inMainFile(fn) {
		t.Errorf("function is not in the main file")
	}
	if p := pos(lit); p.Line != 1 || p.Column != 9 {
		t.Errorf("pos(literal) = %+v, want the spelling location 1:9", p)
	}
}

func TestInMainFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
	}{
		{"no location", &Node{Kind: VarDecl}},
		{"empty location", &Node{Kind: VarDecl, Loc: &Loc{}, Range: &Range{}}},
		{"built-in", &Node{Kind: VarDecl, Loc: &Loc{BareLoc: BareLoc{File: "<built-in>", Line: 1, Col: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if inMainFile(tt.n) {
				t.Errorf("inMainFile = true, want false")
			}
		})
	}
}
