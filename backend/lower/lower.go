// Package lower turns a type-resolved source tree into a Superast document.
//
// Lowering is a single depth-first pass in source order. A Lowerer owns the
// state of one run: the node id counter and the flag marking an I/O chain in
// progress. A Lowerer must not be used from more than one goroutine; lower
// independent inputs with independent Lowerers.
//
// Constructs the schema does not support are turned into "error" or
// "warning" nodes in place and lowering continues. Node kinds the engine has
// no mapping for abort the run with an *UnsupportedError.
package lower

import (
	"errors"
	"fmt"
	"log"

	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/source"
)

// ErrUnsupported is matched by every *UnsupportedError.
var ErrUnsupported = errors.New("unsupported node")

// UnsupportedError reports a source node that has no lowering.
type UnsupportedError struct {
	Kind string
	Pos  source.Pos
}

func (e *UnsupportedError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("lower: unsupported %s", e.Kind)
	}
	return fmt.Sprintf("lower: unsupported %s at %d:%d", e.Kind, e.Pos.Line, e.Pos.Column)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Lowerer lowers source trees into Superast nodes.
type Lowerer struct {
	nextID      int
	chainActive bool
	logger      *log.Logger
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithLogger makes the Lowerer report constructs it drops or cannot
// resolve.
func WithLogger(logger *log.Logger) Option {
	return func(l *Lowerer) {
		l.logger = logger
	}
}

// New creates a Lowerer whose first id is 0.
func New(opts ...Option) *Lowerer {
	l := &Lowerer{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextID returns the id the next constructed node will get, which is also
// the number of ids handed out so far.
func (l *Lowerer) NextID() int {
	return l.nextID
}

// Document lowers a translation unit into the root document.
func (l *Lowerer) Document(tu *source.TranslationUnit) (*model.Document, error) {
	doc := &model.Document{
		ID:         l.newID(),
		Statements: []model.Stmt{},
	}
	if tu == nil {
		return doc, nil
	}

	for _, decl := range tu.Decls {
		n, err := l.Decl(decl)
		if err != nil {
			return nil, err
		}
		if n != nil {
			doc.Statements = append(doc.Statements, n)
		}
	}

	return doc, nil
}

func (l *Lowerer) logf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Printf(format, args...)
	}
}
