// Copyright 2024 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graphtype binds element types into named graph types with key and
// cardinality constraints, and holds validated graph instances in memory.
package graphtype

import (
	"errors"
	"fmt"

	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/element"
	"github.com/alastai/grasch-lex/spectral"
)

var (
	ErrEmptyName   = errors.New("graphtype: graph type name is empty")
	ErrNilSchema   = errors.New("graphtype: nil schema")
	ErrUnknownNode = errors.New("graphtype: unknown node")
)

// KeyConstraint requires every instance of an element type, or of one of its
// subtypes, to carry each named attribute. A label attribute must be present and a
// property attribute must have a value.
type KeyConstraint struct {
	Type       element.ElementType
	Attributes []string
}

func (kc KeyConstraint) missing(in spectral.Instance) []string {
	var out []string
	for _, a := range kc.Attributes {
		if in.HasLabel(a) {
			continue
		}
		if _, ok := in.Value(a); ok {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CardinalityConstraint bounds the number of edges of a type leaving each tail
// node, or touching each endpoint node when the edge type is undirected. Max of
// zero means unbounded.
type CardinalityConstraint struct {
	Edge     *element.EdgeType
	Min, Max int
}

// GraphType is a named set of element types with its constraints.
type GraphType struct {
	name        string
	schema      *element.Schema
	validator   *spectral.Validator
	mode        spectral.Mode
	allKeyed    bool
	keys        []KeyConstraint
	cardinality []CardinalityConstraint
}

// Option configures a graph type.
type Option func(*GraphType)

// AllElementTypesKeyed requires every element type of the schema to be keyed.
func AllElementTypesKeyed() Option {
	return func(g *GraphType) { g.allKeyed = true }
}

// WithKey adds a key constraint.
func WithKey(et element.ElementType, attrs ...string) Option {
	return func(g *GraphType) {
		g.keys = append(g.keys, KeyConstraint{Type: et, Attributes: attrs})
	}
}

// WithCardinality adds a cardinality constraint on an edge type.
func WithCardinality(e *element.EdgeType, min, max int) Option {
	return func(g *GraphType) {
		g.cardinality = append(g.cardinality, CardinalityConstraint{Edge: e, Min: min, Max: max})
	}
}

// WithMode sets the conformance mode used for inserts with a declared type.
func WithMode(m spectral.Mode) Option {
	return func(g *GraphType) { g.mode = m }
}

// New creates a graph type over a schema.
func New(name string, s *element.Schema, opts ...Option) (*GraphType, error) {
	switch {
	case name == "":
		return nil, ErrEmptyName
	case s == nil:
		return nil, ErrNilSchema
	}
	g := &GraphType{
		name:      name,
		schema:    s,
		validator: spectral.NewValidator(s),
		mode:      spectral.SubtypeConformant,
		allKeyed:  s.AllKeyed(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.allKeyed {
		for _, k := range []element.Kind{element.NodeKind, element.EdgeKind} {
			for _, et := range s.ElementTypes(k) {
				if !et.Content().HasKey() {
					return nil, &content.InvalidKeyError{Content: et.Name(), Reason: "all element types must be keyed"}
				}
			}
		}
	}
	for _, kc := range g.keys {
		if err := g.checkConstraintType(kc.Type); err != nil {
			return nil, err
		}
		if len(kc.Attributes) == 0 {
			return nil, fmt.Errorf("graphtype: key constraint on %q has no attributes", kc.Type.Name())
		}
	}
	for _, cc := range g.cardinality {
		if err := g.checkConstraintType(cc.Edge); err != nil {
			return nil, err
		}
		if cc.Min < 0 || (cc.Max != 0 && cc.Max < cc.Min) {
			return nil, fmt.Errorf("graphtype: invalid cardinality [%d, %d] on %q", cc.Min, cc.Max, cc.Edge.Name())
		}
	}
	return g, nil
}

func (g *GraphType) checkConstraintType(et element.ElementType) error {
	if et == nil {
		return spectral.ErrUnknownElementType
	}
	var ok bool
	switch et := et.(type) {
	case *element.NodeType:
		var n *element.NodeType
		n, ok = g.schema.NodeType(et.Name())
		ok = ok && n == et
	case *element.EdgeType:
		var e *element.EdgeType
		e, ok = g.schema.EdgeType(et.Name())
		ok = ok && e == et
	}
	if !ok {
		return fmt.Errorf("graphtype: constraint on %q: %w", et.Name(), spectral.ErrUnknownElementType)
	}
	return nil
}

func (g *GraphType) Name() string                    { return g.name }
func (g *GraphType) Schema() *element.Schema         { return g.schema }
func (g *GraphType) Validator() *spectral.Validator  { return g.validator }
func (g *GraphType) Mode() spectral.Mode             { return g.mode }
func (g *GraphType) AllElementTypesKeyed() bool      { return g.allKeyed }
func (g *GraphType) KeyConstraints() []KeyConstraint { return append([]KeyConstraint(nil), g.keys...) }

// CardinalityConstraints returns the cardinality constraints of the graph type.
func (g *GraphType) CardinalityConstraints() []CardinalityConstraint {
	return append([]CardinalityConstraint(nil), g.cardinality...)
}

// checkKeys checks an instance resolved to et against every key constraint on et
// or one of its supertypes.
func (g *GraphType) checkKeys(in spectral.Instance, et element.ElementType) error {
	for _, kc := range g.keys {
		if !g.schema.Leq(et, kc.Type) {
			continue
		}
		if miss := kc.missing(in); len(miss) != 0 {
			return &KeyConstraintError{Type: et, Constraint: kc.Type, Missing: miss}
		}
	}
	return nil
}
