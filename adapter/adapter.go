package adapter

import (
	"log/slog"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/graph"
	"github.com/syssam/pandagraph/iterator"
)

// Adapter resolves graph queries against the esports API.
//
// An Adapter owns one client, one executor that serializes its requests
// and one error sink shared by every sequence it returns.
type Adapter struct {
	client *client.Client
	schema *graph.Schema
	sink   *pandagraph.ErrorSink
	exec   *executor
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// WithErrorSink makes the adapter record into sink instead of a fresh one,
// so several adapters can report into one place.
func WithErrorSink(sink *pandagraph.ErrorSink) Option {
	return func(a *Adapter) {
		a.sink = sink
	}
}

// New returns an Adapter issuing requests through c.
func New(c *client.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client: c,
		schema: graph.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.sink == nil {
		a.sink = pandagraph.NewErrorSink()
	}
	a.exec = newExecutor(a.logger)
	return a
}

// Schema returns the schema the adapter resolves.
func (a *Adapter) Schema() *graph.Schema {
	return a.schema
}

// Errors returns the sink collecting the adapter's recoverable errors.
func (a *Adapter) Errors() *pandagraph.ErrorSink {
	return a.sink
}

// Coerce reports, for every context, whether its active vertex can be
// viewed as the candidate type. A context without an active vertex
// coerces to nothing. An unknown candidate panics with a ContractError.
func (a *Adapter) Coerce(contexts iterator.Iterator[Context], candidate string) iterator.Iterator[Outcome[bool]] {
	if !a.schema.HasType(candidate) {
		pandagraph.Unreachable("attempted to coerce to unknown type %s", candidate)
	}
	return iterator.Map(contexts, func(c Context) Outcome[bool] {
		v := c.ActiveVertex()
		if v == nil {
			return Outcome[bool]{Context: c}
		}
		return Outcome[bool]{Context: c, Value: a.schema.CanCoerce(v.Typename(), candidate)}
	})
}
