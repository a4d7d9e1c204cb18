package adapter

// Context is one in-flight query row. The resolvers read its active
// vertex and hand the context back unchanged alongside their result.
type Context interface {
	// ActiveVertex returns the vertex the row currently points at, or nil
	// when an optional step found nothing.
	ActiveVertex() Vertex
}

type vertexContext struct {
	v Vertex
}

func (c vertexContext) ActiveVertex() Vertex { return c.v }

// NewContext returns a Context whose active vertex is v.
func NewContext(v Vertex) Context {
	return vertexContext{v: v}
}

// Outcome pairs a context with the value resolved for it.
type Outcome[T any] struct {
	Context Context
	Value   T
}

// Params are the arguments of a root edge (e.g., "game", "search").
type Params map[string]any
