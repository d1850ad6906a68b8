package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tenntenn/superast-cpp/backend/source"
)

func TestParseQualType(t *testing.T) {
	records := Records{"Point": "struct", "Shape": "class", "Color": "enum", "Level": "enum class"}
	intType := &source.Type{Kind: source.Integer}

	tests := []struct {
		qual      string
		desugared string
		want      *source.Type
	}{
		{"int", "", intType},
		{"unsigned long long", "", intType},
		{"size_t", "unsigned long", intType},
		{"bool", "", &source.Type{Kind: source.Bool}},
		{"float", "", &source.Type{Kind: source.Floating}},
		{"long double", "", &source.Type{Kind: source.Floating}},
		{"void", "", &source.Type{Kind: source.Void}},
		{"char", "", &source.Type{Kind: source.Char}},
		{"unsigned char", "", &source.Type{Kind: source.Char}},
		{"const int", "", &source.Type{Kind: source.Integer, Const: true}},
		{"int &", "", &source.Type{Kind: source.Integer, Reference: true}},
		{"int &&", "", &source.Type{Kind: source.Integer, Reference: true}},
		{"const int &", "", &source.Type{Kind: source.Integer, Const: true, Reference: true}},
		{"string", "std::basic_string<char>", &source.Type{Kind: source.String}},
		{"std::string", "std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char> >", &source.Type{Kind: source.String}},
		{"const std::string &", "", &source.Type{Kind: source.String, Const: true, Reference: true}},
		{"Point", "", &source.Type{Kind: source.Record, Name: "Point"}},
		{"struct Point", "", &source.Type{Kind: source.Record, Name: "Point"}},
		{"const Point &", "", &source.Type{Kind: source.Record, Name: "Point", Const: true, Reference: true}},
		{"Shape", "", &source.Type{Name: "Record"}},
		{"std::map<int, int>", "", &source.Type{Name: "Record"}},
		{"enum Color", "", intType},
		{"Color", "", intType},
		{"enum Mode", "", intType},
		{"Level", "", &source.Type{Name: "Enum"}},
		{"enum Level", "", &source.Type{Name: "Enum"}},
		{"const Level", "", &source.Type{Name: "Enum", Const: true}},
		{"int *", "", &source.Type{Name: "Pointer"}},
		{"const char *", "", &source.Type{Name: "Pointer"}},
		{"int *const", "", &source.Type{Name: "Pointer", Const: true}},
		{"const int *const", "", &source.Type{Name: "Pointer", Const: true}},
		{"int *const &", "", &source.Type{Name: "Pointer", Const: true, Reference: true}},
		{"int const", "", &source.Type{Kind: source.Integer, Const: true}},
		{"volatile int", "", intType},
		{"int [3]", "", &source.Type{Name: "ConstantArray"}},
		{"int []", "", &source.Type{Name: "IncompleteArray"}},
		{"int (int, int)", "", &source.Type{Name: "FunctionProto"}},
		{"int (*)(int)", "", &source.Type{Name: "Pointer"}},
		{"std::ostream", "std::basic_ostream<char>", &source.Type{Kind: source.OStream, Name: "Record"}},
		{"std::istream", "std::basic_istream<char>", &source.Type{Kind: source.IStream, Name: "Record"}},
		{
			"basic_ostream<char, char_traits<char>> &(basic_ostream<char, char_traits<char>> &)", "",
			&source.Type{Kind: source.StreamManipulator, Name: "FunctionProto"},
		},
		{"vector<int>", "std::vector<int>", &source.Type{Kind: source.Vector, Elem: intType}},
		{
			"vector<vector<int> >",
			"std::vector<std::vector<int, std::allocator<int> >, std::allocator<std::vector<int, std::allocator<int> > > >",
			&source.Type{Kind: source.Vector, Elem: &source.Type{Kind: source.Vector, Elem: intType}},
		},
		{
			"const vector<Point> &", "const std::__1::vector<Point, std::__1::allocator<Point>> &",
			&source.Type{Kind: source.Vector, Elem: &source.Type{Kind: source.Record, Name: "Point"}, Const: true, Reference: true},
		},
		{"vector<string>", "std::vector<std::string>", &source.Type{Kind: source.Vector, Elem: &source.Type{Kind: source.String}}},
		{"vector<char>", "", &source.Type{Kind: source.Vector, Elem: &source.Type{Kind: source.Char}}},
	}

	for _, tt := range tests {
		t.Run(tt.qual, func(t *testing.T) {
			got := ParseQualType(tt.qual, tt.desugared, records)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseQualType(%q, %q) (-want +got):\n%s", tt.qual, tt.desugared, diff)
			}
		})
	}
}

func TestSplitTemplate(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantArgs []string
	}{
		{"int", "int", nil},
		{"std::vector<int>", "std::vector", []string{"int"}},
		{"map<pair<int, int>, vector<int>>", "map", []string{"pair<int, int>", "vector<int>"}},
		{"function<int (int, int)>", "function", []string{"int (int, int)"}},
		{"std::vector<int>::iterator", "std::vector<int>::iterator", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, args := splitTemplate(tt.in)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args (-want +got):\n%s", diff)
			}
		})
	}
}
