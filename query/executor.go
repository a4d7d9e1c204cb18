package query

import (
	"context"

	"github.com/syssam/pandagraph/adapter"
	"github.com/syssam/pandagraph/iterator"
)

// Result is one output row: selected properties by name, and selected
// edges as []Result.
type Result map[string]any

// Executor runs queries through an adapter.
type Executor struct {
	adapter *adapter.Adapter
}

// NewExecutor returns an Executor resolving through a.
func NewExecutor(a *adapter.Adapter) *Executor {
	return &Executor{adapter: a}
}

// Run validates q and returns its rows lazily: each call to Next resolves
// one root vertex and everything selected beneath it. Recoverable failures
// met along the way land in the adapter's error sink; the rows affected by
// them are simply shorter.
func (e *Executor) Run(ctx context.Context, q *Query) (iterator.Iterator[Result], error) {
	schema := e.adapter.Schema()
	if err := q.Validate(schema); err != nil {
		return nil, err
	}
	target, _ := schema.RootField(q.Root)
	roots := e.adapter.Start(ctx, q.Root, adapter.Params(q.Params))
	return e.selectAll(ctx, target, roots, &q.Selection), nil
}

// selectAll applies sel to every vertex of vs, dropping those that fail its
// coercion, and stops after sel.Limit rows.
func (e *Executor) selectAll(ctx context.Context, typeName string, vs iterator.Iterator[adapter.Vertex], sel *Selection) iterator.Iterator[Result] {
	rows := iterator.FilterMap(vs, func(v adapter.Vertex) (Result, bool) {
		return e.resolve(ctx, typeName, v, sel)
	})
	return iterator.Take(rows, sel.Limit)
}

func (e *Executor) resolve(ctx context.Context, typeName string, v adapter.Vertex, sel *Selection) (Result, bool) {
	if sel.Coerce != "" {
		o, _ := e.adapter.Coerce(single(v), sel.Coerce).Next()
		if !o.Value {
			return nil, false
		}
		typeName = sel.Coerce
	}

	row := make(Result, len(sel.Fields)+len(sel.Edges))
	for _, f := range sel.Fields {
		o, _ := e.adapter.Property(single(v), typeName, f).Next()
		row[f] = o.Value
	}
	schema := e.adapter.Schema()
	for _, name := range sel.edgeNames() {
		target, _ := schema.EdgeTarget(typeName, name)
		o, _ := e.adapter.Neighbor(ctx, single(v), typeName, name, nil).Next()
		children := iterator.Collect(e.selectAll(ctx, target, o.Value, sel.Edges[name]))
		if children == nil {
			children = []Result{}
		}
		row[name] = children
	}
	return row, true
}

func single(v adapter.Vertex) iterator.Iterator[adapter.Context] {
	return iterator.Of(adapter.NewContext(v))
}
