package sphinxql

import (
	"errors"
	"fmt"

	"github.com/syssam/sphinx/dialect/sql"
)

// Kind identifies the category of a SphinxQL statement.
type Kind uint8

// Statement kinds.
const (
	KindSelect Kind = iota + 1
	KindInsert
	KindReplace
	KindUpdate
	KindDelete
	KindShow
	KindTruncate
)

var kindNames = map[Kind]string{
	KindSelect:   "select",
	KindInsert:   "insert",
	KindReplace:  "replace",
	KindUpdate:   "update",
	KindDelete:   "delete",
	KindShow:     "show",
	KindTruncate: "truncate",
}

// String returns the lower-case verb of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Statement is a SphinxQL statement that can be rendered by a Platform.
type Statement interface {
	sql.Querier
	// Kind returns the statement category.
	Kind() Kind
	// Index returns the target index, or a comma separated list of
	// indexes for multi-index selects.
	Index() string
	// Err returns the errors found while building the statement.
	Err() error
}

// Renderer renders a statement into SphinxQL text and arguments.
type Renderer interface {
	Render(Statement) (string, []any, error)
}

// RenderFunc is an adapter to allow the use of ordinary functions as Renderer.
type RenderFunc func(Statement) (string, []any, error)

// Render calls f(stmt).
func (f RenderFunc) Render(stmt Statement) (string, []any, error) { return f(stmt) }

// Platform maps statement kinds to the renderer that emits them. The map is
// fixed when the platform is created: only SELECT is decorated, every other
// kind renders through its own builder.
type Platform struct {
	decorators map[Kind]Renderer
}

// NewPlatform returns the SphinxQL platform.
func NewPlatform() *Platform {
	return &Platform{
		decorators: map[Kind]Renderer{
			KindSelect: SelectDecorator{},
		},
	}
}

// Decorator returns the renderer registered for the kind, if any.
func (p *Platform) Decorator(k Kind) (Renderer, bool) {
	r, ok := p.decorators[k]
	return r, ok
}

// Render renders the statement, using the decorator registered for its
// kind when there is one.
func (p *Platform) Render(stmt Statement) (string, []any, error) {
	if stmt == nil {
		return "", nil, errors.New("sphinxql: nil statement")
	}
	if r, ok := p.decorators[stmt.Kind()]; ok {
		return r.Render(stmt)
	}
	return sql.Render(stmt)
}
