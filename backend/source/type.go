package source

// TypeKind classifies a resolved type.
type TypeKind int

const (
	Other TypeKind = iota
	Bool
	Integer
	Floating
	Void
	Char
	String
	Vector
	Record
	OStream
	IStream
	StreamManipulator
)

var kindNames = [...]string{
	Other:             "Other",
	Bool:              "Bool",
	Integer:           "Integer",
	Floating:          "Floating",
	Void:              "Void",
	Char:              "Char",
	String:            "String",
	Vector:            "Vector",
	Record:            "Record",
	OStream:           "OStream",
	IStream:           "IStream",
	StreamManipulator: "StreamManipulator",
}

func (k TypeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TypeKind(?)"
}

// Type is a resolved type.
type Type struct {
	Kind TypeKind

	// Elem is the element type of a Vector.
	Elem *Type

	// Name is the declared name of a Record, or the type class name
	// (e.g. "Pointer", "ConstantArray") of an Other type.
	Name string

	// Const reports whether the type, or the type a reference refers to,
	// is const-qualified.
	Const bool

	// Reference reports whether the declared type is a reference.
	Reference bool
}

// IsStream reports whether values of t are stream objects or stream
// manipulators, which take part in I/O chains without being lowered.
func (t *Type) IsStream() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case OStream, IStream, StreamManipulator:
		return true
	}
	return false
}

// Depth returns the number of nested Vector levels of t and the innermost
// element type.
func (t *Type) Depth() (int, *Type) {
	depth := 0
	for t != nil && t.Kind == Vector {
		depth++
		t = t.Elem
	}
	return depth, t
}
