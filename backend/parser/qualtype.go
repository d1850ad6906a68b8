package parser

import (
	"strings"

	"github.com/tenntenn/superast-cpp/backend/source"
)

// Records maps the names of the tag types declared in the main file to the
// keyword they were declared with: "struct", "class", "union", "enum", or
// "enum class" for a scoped enumeration.
type Records map[string]string

// ParseQualType parses a type as clang prints it into a resolved type. The
// desugared spelling is preferred when present.
func ParseQualType(qual, desugared string, records Records) *source.Type {
	s := desugared
	if s == "" {
		s = qual
	}
	return parseType(s, records)
}

func parseType(s string, records Records) *source.Type {
	s = strings.TrimSpace(s)
	t := &source.Type{}

	if i := topLevelIndex(s, '('); i >= 0 {
		rest := strings.TrimSpace(s[i+1:])
		if strings.HasPrefix(rest, "*") || strings.HasPrefix(rest, "&") {
			t.Name = "Pointer"
			return t
		}
		result := parseType(s[:i], records)
		if result.Kind == source.OStream {
			t.Kind = source.StreamManipulator
		}
		t.Name = "FunctionProto"
		return t
	}

	if rest, ok := strings.CutSuffix(s, "&"); ok {
		t.Reference = true
		s = strings.TrimSpace(strings.TrimSuffix(rest, "&"))
	}

	// Qualifiers after a pointer apply to the pointer, those before it to
	// the pointee.
	s, t.Const = cutTrailingConst(s)
	if strings.HasSuffix(s, "*") {
		t.Name = "Pointer"
		return t
	}
	var leading bool
	s, leading = cutLeadingConst(s)
	t.Const = t.Const || leading

	switch {
	case strings.HasSuffix(s, "[]"):
		t.Name = "IncompleteArray"
		return t
	case strings.HasSuffix(s, "]"):
		t.Name = "ConstantArray"
		return t
	}

	tag := ""
	for _, kw := range []string{"struct", "class", "union", "enum"} {
		if rest, ok := strings.CutPrefix(s, kw+" "); ok {
			tag, s = kw, strings.TrimSpace(rest)
			break
		}
	}

	name, args := splitTemplate(s)
	name = unqualified(name)

	switch name {
	case "vector":
		t.Kind = source.Vector
		if len(args) > 0 {
			t.Elem = parseType(args[0], records)
		}
		return t
	case "string", "basic_string":
		t.Kind = source.String
		return t
	case "ostream", "basic_ostream":
		t.Kind = source.OStream
		t.Name = "Record"
		return t
	case "istream", "basic_istream":
		t.Kind = source.IStream
		t.Name = "Record"
		return t
	}

	if args == nil {
		if kind, ok := builtinKind(name); ok {
			t.Kind = kind
			return t
		}
	}

	if declared, ok := records[name]; ok && args == nil {
		tag = declared
	}

	switch tag {
	case "enum":
		// Unscoped enumerations are integer types.
		t.Kind = source.Integer
	case "enum class", "enum struct":
		t.Name = "Enum"
	case "struct":
		t.Kind = source.Record
		t.Name = name
	default:
		t.Name = "Record"
	}
	return t
}

// cutTrailingConst removes the qualifiers written after a type, as in
// "int const" or "int *const".
func cutTrailingConst(s string) (string, bool) {
	isConst := false
	for {
		switch {
		case hasQualifierSuffix(s, "const"):
			s, isConst = strings.TrimSpace(s[:len(s)-len("const")]), true
		case hasQualifierSuffix(s, "volatile"):
			s = strings.TrimSpace(s[:len(s)-len("volatile")])
		default:
			return s, isConst
		}
	}
}

// hasQualifierSuffix reports whether s ends with the qualifier q as a
// separate word.
func hasQualifierSuffix(s, q string) bool {
	if !strings.HasSuffix(s, q) || len(s) == len(q) {
		return false
	}
	c := s[len(s)-len(q)-1]
	return c == ' ' || c == '*' || c == '&'
}

// cutLeadingConst removes the qualifiers written before a type, as in
// "const int".
func cutLeadingConst(s string) (string, bool) {
	isConst := false
	for {
		switch {
		case strings.HasPrefix(s, "const "):
			s, isConst = strings.TrimSpace(s[len("const "):]), true
		case strings.HasPrefix(s, "volatile "):
			s = strings.TrimSpace(s[len("volatile "):])
		default:
			return s, isConst
		}
	}
}

// splitTemplate splits "ns::name<a, b<c, d>>" into "ns::name" and its
// top-level template arguments. A comma nested inside an argument's own
// argument list never splits it. args is nil for a non-template name.
func splitTemplate(s string) (name string, args []string) {
	open := strings.IndexByte(s, '<')
	if open < 0 || !strings.HasSuffix(s, ">") {
		return s, nil
	}

	name = s[:open]
	inner := s[open+1 : len(s)-1]
	args = []string{}
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(inner[start:]); last != "" {
		args = append(args, last)
	}
	return name, args
}

// unqualified strips namespace qualifiers: std::__1::vector becomes vector.
func unqualified(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}

// topLevelIndex returns the index of the first c outside template argument
// lists, or -1.
func topLevelIndex(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case c:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var integerWords = map[string]bool{
	"int":      true,
	"short":    true,
	"long":     true,
	"signed":   true,
	"unsigned": true,
	"__int128": true,
}

func builtinKind(name string) (source.TypeKind, bool) {
	switch name {
	case "bool", "_Bool":
		return source.Bool, true
	case "void":
		return source.Void, true
	case "float", "double", "long double", "__float128", "_Float16":
		return source.Floating, true
	case "wchar_t", "char8_t", "char16_t", "char32_t":
		return source.Char, true
	}

	words := strings.Fields(name)
	if len(words) == 0 {
		return source.Other, false
	}
	isChar := false
	for _, w := range words {
		if w == "char" {
			isChar = true
			continue
		}
		if !integerWords[w] {
			return source.Other, false
		}
	}
	if isChar {
		return source.Char, true
	}
	return source.Integer, true
}
