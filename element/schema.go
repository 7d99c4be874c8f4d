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

package element

import (
	"github.com/alastai/grasch-lex/lattice"
)

// Schema is an immutable set of node and edge types over a lattice snapshot.
// It is safe for concurrent use.
type Schema struct {
	lattice     *lattice.Snapshot
	nodes       []*NodeType
	edges       []*EdgeType
	nodeByName  map[string]*NodeType
	edgeByName  map[string]*EdgeType
	requireKeys bool
}

// Lattice returns the lattice snapshot the schema was derived over.
func (s *Schema) Lattice() *lattice.Snapshot { return s.lattice }

// AllKeyed reports whether the schema was derived under the ALL ELEMENT TYPES
// KEYED policy.
func (s *Schema) AllKeyed() bool { return s.requireKeys }

// Nodes returns the node types in registration order.
func (s *Schema) Nodes() []*NodeType { return append([]*NodeType(nil), s.nodes...) }

// Edges returns the edge types in registration order.
func (s *Schema) Edges() []*EdgeType { return append([]*EdgeType(nil), s.edges...) }

// NodeType returns the node type with a given name.
func (s *Schema) NodeType(name string) (*NodeType, bool) {
	n, ok := s.nodeByName[name]
	return n, ok
}

// EdgeType returns the edge type with a given name.
func (s *Schema) EdgeType(name string) (*EdgeType, bool) {
	e, ok := s.edgeByName[name]
	return e, ok
}

// ElementTypes returns every element type of a kind in registration order.
func (s *Schema) ElementTypes(k Kind) []ElementType {
	var out []ElementType
	switch k {
	case NodeKind:
		for _, n := range s.nodes {
			out = append(out, n)
		}
	case EdgeKind:
		for _, e := range s.edges {
			out = append(out, e)
		}
	}
	return out
}

// NodeLeq reports whether node type a is a subtype of node type b, which holds
// iff the content type of a is a subtype of the content type of b.
func (s *Schema) NodeLeq(a, b *NodeType) bool {
	return s.lattice.Leq(a.handle, b.handle)
}

// EdgeLeq reports whether edge type a is a subtype of edge type b. Edge types are
// compared component-wise: a <= b iff both have the same orientation and the
// tail, arc and head of a are subtypes of the corresponding components of b.
// Endpoints of undirected edge types may match in either order.
//
// An OrientationMismatchError is returned for edge types of different orientation.
// Otherwise a false result means the edge types are not comparable in this direction.
func (s *Schema) EdgeLeq(a, b *EdgeType) (bool, error) {
	if a.orientation != b.orientation {
		return false, &OrientationMismatchError{Sub: a, Super: b}
	}
	if !s.lattice.Leq(a.handle, b.handle) {
		return false, nil
	}
	if s.NodeLeq(a.tail, b.tail) && s.NodeLeq(a.head, b.head) {
		return true, nil
	}
	if a.orientation == Undirected {
		return s.NodeLeq(a.tail, b.head) && s.NodeLeq(a.head, b.tail), nil
	}
	return false, nil
}

// Leq reports whether a is a subtype of b. Element types of different kinds or
// orientations are never comparable.
func (s *Schema) Leq(a, b ElementType) bool {
	switch a := a.(type) {
	case *NodeType:
		if b, ok := b.(*NodeType); ok {
			return s.NodeLeq(a, b)
		}
	case *EdgeType:
		if b, ok := b.(*EdgeType); ok {
			ok, _ = s.EdgeLeq(a, b)
			return ok
		}
	}
	return false
}

// SubtypesOf returns the registered element types of the same kind that are
// subtypes of et, in registration order. The result includes et unless strict
// is set.
func (s *Schema) SubtypesOf(et ElementType, strict bool) []ElementType {
	var out []ElementType
	for _, c := range s.ElementTypes(et.Kind()) {
		if strict && c == et {
			continue
		}
		if s.Leq(c, et) {
			out = append(out, c)
		}
	}
	return out
}

// SupertypesOf returns the registered element types of the same kind that are
// supertypes of et, in registration order. The result includes et unless strict
// is set.
func (s *Schema) SupertypesOf(et ElementType, strict bool) []ElementType {
	var out []ElementType
	for _, c := range s.ElementTypes(et.Kind()) {
		if strict && c == et {
			continue
		}
		if s.Leq(et, c) {
			out = append(out, c)
		}
	}
	return out
}
