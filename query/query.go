// Package query runs declarative selections over the esports graph.
//
// A query is a YAML document naming a root edge, its parameters and a
// nested selection of properties and edges:
//
//	root: Tournaments
//	params: {game: lol, search: LEC}
//	limit: 5
//	fields: [name, tier, begin_at]
//	edges:
//	  winner:
//	    coerce: WinnerTeam
//	    edges:
//	      team: {fields: [name, acronym]}
//	  matches: {limit: 3, fields: [name, match_status]}
//
// Queries are validated against the graph schema before they run, so the
// adapter never sees a name the schema does not declare.
package query

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/graph"
)

// Query is a root edge plus the selection applied to each root vertex.
type Query struct {
	// Root is the root edge to start from (e.g., "Matches").
	Root string `yaml:"root"`
	// Params are the root edge arguments (e.g., game, search).
	Params map[string]any `yaml:"params,omitempty"`

	Selection `yaml:",inline"`
}

// Selection picks properties and edges of one vertex.
type Selection struct {
	// Coerce narrows the vertex to a subtype; vertices that are not of
	// that type are skipped.
	Coerce string `yaml:"coerce,omitempty"`
	// Limit caps the number of vertices selected. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`
	// Fields are the properties to output.
	Fields FieldList `yaml:"fields,omitempty"`
	// Edges are the neighbors to expand, by edge name.
	Edges map[string]*Selection `yaml:"edges,omitempty"`
}

// FieldList is a YAML type that can be either a field name or a list of
// field names.
type FieldList []string

// UnmarshalYAML implements yaml.Unmarshaler for FieldList.
func (l *FieldList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("query: expected field name or list, got %v", node.Kind)
	}
}

// edgeNames returns the selected edges in a stable order.
func (s *Selection) edgeNames() []string {
	names := make([]string, 0, len(s.Edges))
	for name := range s.Edges {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse decodes a query document. Unknown keys are rejected.
func Parse(data []byte) (*Query, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var q Query
	if err := dec.Decode(&q); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("query: empty document")
		}
		return nil, fmt.Errorf("query: parse: %w", err)
	}
	return &q, nil
}

// Load reads and decodes a query document from path.
func Load(path string) (*Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("query: read %s: %w", path, err)
	}
	return Parse(data)
}

// Error is a problem found while validating a query.
type Error struct {
	Path string // Selection path (e.g., "Tournaments.winner.team")
	Msg  string
}

// Error returns the error string.
func (e *Error) Error() string {
	return fmt.Sprintf("query: %s: %s", e.Path, e.Msg)
}

// Validate checks q against schema and reports every problem found.
func (q *Query) Validate(schema *graph.Schema) error {
	var errs []error
	fail := func(path, format string, args ...any) {
		errs = append(errs, &Error{Path: path, Msg: fmt.Sprintf(format, args...)})
	}

	if q.Root == "" {
		fail("root", "missing root edge")
		return pandagraph.NewAggregateError(errs...)
	}
	target, ok := schema.RootField(q.Root)
	if !ok {
		fail(q.Root, "unknown root edge (want one of %s)", strings.Join(schema.RootFields(), ", "))
		return pandagraph.NewAggregateError(errs...)
	}
	declared := schema.RootArguments(q.Root)
	for _, name := range sortedKeys(q.Params) {
		if !slices.Contains(declared, name) {
			fail(q.Root, "unknown parameter %q", name)
		}
	}
	validateSelection(schema, q.Root, target, &q.Selection, fail)
	return pandagraph.NewAggregateError(errs...)
}

func validateSelection(schema *graph.Schema, path, typeName string, sel *Selection, fail func(path, format string, args ...any)) {
	if sel.Limit < 0 {
		fail(path, "negative limit %d", sel.Limit)
	}
	if sel.Coerce != "" {
		switch {
		case !schema.HasType(sel.Coerce):
			fail(path, "cannot coerce to unknown type %s", sel.Coerce)
			return
		case !schema.CanCoerce(sel.Coerce, typeName):
			fail(path, "%s is not a subtype of %s", sel.Coerce, typeName)
			return
		}
		typeName = sel.Coerce
	}
	for _, f := range sel.Fields {
		if !schema.IsProperty(typeName, f) {
			fail(path, "%s has no property %q", typeName, f)
		}
	}
	for _, name := range sel.edgeNames() {
		child := sel.Edges[name]
		childPath := path + "." + name
		target, ok := schema.EdgeTarget(typeName, name)
		if !ok {
			fail(childPath, "%s has no edge %q", typeName, name)
			continue
		}
		if child == nil {
			child = &Selection{}
			sel.Edges[name] = child
		}
		validateSelection(schema, childPath, target, child, fail)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
