package lower

import (
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

const vectorTypeName = "vector"

// Type maps a resolved type to a type node. A container of depth d becomes
// d nested "vector" nodes around the element's node; the element is
// numbered first.
func (l *Lowerer) Type(t *source.Type) *model.TypeNode {
	if t != nil && t.Kind == source.Vector {
		depth, elem := t.Depth()
		node := l.Type(elem)
		for range depth {
			node = &model.TypeNode{
				ID:       l.newID(),
				Name:     vectorTypeName,
				DataType: node,
			}
		}
		return node
	}

	return &model.TypeNode{
		ID:   l.newID(),
		Name: typeName(t),
	}
}

func typeName(t *source.Type) string {
	if t == nil {
		return "Unknown: (Invalid)"
	}

	switch t.Kind {
	case source.Bool:
		return "bool"
	case source.Integer:
		return "int"
	case source.Floating:
		return "double"
	case source.Void:
		return "void"
	case source.Char, source.String:
		return "string"
	case source.Record:
		if t.Name != "" {
			return t.Name
		}
	}

	class := t.Name
	if class == "" {
		class = t.Kind.String()
	}
	return "Unknown: (" + class + ")"
}

// isAggregate reports whether variables of t are initialized through
// constructors the schema cannot express.
func isAggregate(t *source.Type) bool {
	return t != nil && (t.Kind == source.Record || t.Kind == source.Vector)
}
