package graph

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var source string

// Source returns the SDL text of the default schema.
func Source() string {
	return source
}

var loadDefault = sync.OnceValues(func() (*Schema, error) {
	return Parse("schema.graphql", source)
})

// Default returns the schema the adapter resolves, parsed once per process.
// It panics if the embedded SDL is invalid, which the package tests rule out.
func Default() *Schema {
	s, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is a parsed graph schema with the lookups the resolvers and the
// query validator need.
type Schema struct {
	ast *ast.Schema

	// supertypes maps each type to the interfaces it implements.
	supertypes map[string][]string
}

// Parse parses and validates SDL text. Beyond GraphQL validation, every
// root field must be named after the plural of the type it lists.
func Parse(name, sdl string) (*Schema, error) {
	parsed, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("graph: parse schema %s: %w", name, err)
	}
	if parsed.Query == nil {
		return nil, fmt.Errorf("graph: schema %s has no query root", name)
	}

	s := &Schema{ast: parsed, supertypes: make(map[string][]string)}
	for typeName, ifaces := range parsed.Implements {
		for _, iface := range ifaces {
			s.supertypes[typeName] = append(s.supertypes[typeName], iface.Name)
		}
		slices.Sort(s.supertypes[typeName])
	}
	if err := s.checkRootFields(); err != nil {
		return nil, err
	}
	return s, nil
}

var rules = func() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	r.AddUncountable("series")
	return r
}()

func (s *Schema) checkRootFields() error {
	for _, f := range s.rootFields() {
		target := f.Type.Name()
		if !strings.EqualFold(rules.Pluralize(target), f.Name) {
			return fmt.Errorf("graph: root field %s lists %s; expected it to be named %s",
				f.Name, target, rules.Pluralize(target))
		}
	}
	return nil
}

func (s *Schema) rootFields() ast.FieldList {
	var fields ast.FieldList
	for _, f := range s.ast.Query.Fields {
		if !strings.HasPrefix(f.Name, "__") {
			fields = append(fields, f)
		}
	}
	return fields
}

// AST returns the underlying gqlparser schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// RootFields returns the names of the root (entrypoint) edges, in schema
// order.
func (s *Schema) RootFields() []string {
	var names []string
	for _, f := range s.rootFields() {
		names = append(names, f.Name)
	}
	return names
}

// RootField returns the type listed by a root edge.
func (s *Schema) RootField(name string) (target string, ok bool) {
	if strings.HasPrefix(name, "__") {
		return "", false
	}
	f := s.ast.Query.Fields.ForName(name)
	if f == nil {
		return "", false
	}
	return f.Type.Name(), true
}

// RootArguments returns the parameter names a root edge declares.
func (s *Schema) RootArguments(name string) []string {
	f := s.ast.Query.Fields.ForName(name)
	if f == nil {
		return nil
	}
	args := make([]string, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		args = append(args, a.Name)
	}
	return args
}

// HasType reports whether name is a vertex type (object or interface).
func (s *Schema) HasType(name string) bool {
	def := s.ast.Types[name]
	return def != nil && isVertexKind(def) && def != s.ast.Query
}

// TypeNames returns every vertex type, sorted.
func (s *Schema) TypeNames() []string {
	var names []string
	for name, def := range s.ast.Types {
		if def.BuiltIn || def == s.ast.Query || !isVertexKind(def) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Properties returns the scalar fields of a type, in schema order.
func (s *Schema) Properties(typeName string) []string {
	return s.fields(typeName, false)
}

// Edges returns the vertex-valued fields of a type, in schema order.
func (s *Schema) Edges(typeName string) []string {
	return s.fields(typeName, true)
}

func (s *Schema) fields(typeName string, edges bool) []string {
	def := s.ast.Types[typeName]
	if def == nil {
		return nil
	}
	var names []string
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		if s.isEdge(f) == edges {
			names = append(names, f.Name)
		}
	}
	return names
}

// IsProperty reports whether field is a scalar field of typeName.
func (s *Schema) IsProperty(typeName, field string) bool {
	f := s.field(typeName, field)
	return f != nil && !s.isEdge(f)
}

// EdgeTarget returns the type an edge of typeName points at.
func (s *Schema) EdgeTarget(typeName, edge string) (target string, ok bool) {
	f := s.field(typeName, edge)
	if f == nil || !s.isEdge(f) {
		return "", false
	}
	return f.Type.Name(), true
}

// IsList reports whether an edge of typeName is multi-valued.
func (s *Schema) IsList(typeName, edge string) bool {
	f := s.field(typeName, edge)
	return f != nil && f.Type.Elem != nil
}

// Supertypes returns the interfaces typeName implements, sorted.
func (s *Schema) Supertypes(typeName string) []string {
	return slices.Clone(s.supertypes[typeName])
}

// CanCoerce reports whether a vertex of type from may be viewed as
// candidate: the same type or one of its supertypes.
func (s *Schema) CanCoerce(from, candidate string) bool {
	if from == candidate {
		return true
	}
	return slices.Contains(s.supertypes[from], candidate)
}

func (s *Schema) field(typeName, name string) *ast.FieldDefinition {
	def := s.ast.Types[typeName]
	if def == nil || !isVertexKind(def) || strings.HasPrefix(name, "__") {
		return nil
	}
	return def.Fields.ForName(name)
}

func (s *Schema) isEdge(f *ast.FieldDefinition) bool {
	def := s.ast.Types[f.Type.Name()]
	return def != nil && isVertexKind(def)
}

func isVertexKind(def *ast.Definition) bool {
	return def.Kind == ast.Object || def.Kind == ast.Interface
}
