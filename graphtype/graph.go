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

package graphtype

import (
	"fmt"
	"sync"

	"github.com/cayleygraph/quad"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/element"
	"github.com/alastai/grasch-lex/internal/mapset"
	"github.com/alastai/grasch-lex/spectral"
)

type NodeID int64

type EdgeID int64

// Node is a validated node instance.
type Node struct {
	ID       NodeID
	Type     *element.NodeType
	Instance spectral.Instance
}

// Edge is a validated edge instance.
type Edge struct {
	ID         EdgeID
	Type       *element.EdgeType
	Tail, Head NodeID
	Instance   spectral.Instance
}

func compareID[T ~int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cloneInstance(in spectral.Instance) spectral.Instance {
	out := spectral.Instance{
		Labels:     append([]string(nil), in.Labels...),
		Properties: make(map[string]quad.Value, len(in.Properties)),
	}
	for k, v := range in.Properties {
		if v != nil {
			out.Properties[k] = v
		}
	}
	return out
}

// Graph is an in-memory graph whose elements conform to a graph type.
// It is safe for concurrent use.
type Graph struct {
	name string
	gt   *GraphType

	mu       sync.RWMutex
	nodes    *mapset.Map[NodeID, *Node]
	edges    *mapset.Map[EdgeID, *Edge]
	lastNode NodeID
	lastEdge EdgeID
}

// NewGraph creates an empty graph of a graph type.
func NewGraph(name string, gt *GraphType) *Graph {
	return &Graph{
		name:  name,
		gt:    gt,
		nodes: mapset.NewMap[NodeID, *Node](compareID[NodeID]),
		edges: mapset.NewMap[EdgeID, *Edge](compareID[EdgeID]),
	}
}

func (g *Graph) Name() string          { return g.name }
func (g *Graph) GraphType() *GraphType { return g.gt }

// InsertNode classifies an instance among all node types and stores it.
func (g *Graph) InsertNode(in spectral.Instance) (NodeID, error) {
	return g.insertNode(in, g.gt.validator.Classify(in, element.NodeKind))
}

// InsertNodeAs validates an instance against a declared node type under the
// graph type's mode and stores it.
func (g *Graph) InsertNodeAs(in spectral.Instance, nt *element.NodeType) (NodeID, error) {
	return g.insertNode(in, g.gt.validator.Validate(in, nt, g.gt.mode))
}

func (g *Graph) insertNode(in spectral.Instance, r spectral.Result) (NodeID, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	if err := g.gt.checkKeys(in, r.Type); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastNode++
	n := &Node{ID: g.lastNode, Type: r.Type.(*element.NodeType), Instance: cloneInstance(in)}
	g.nodes.Put(n.ID, n)
	if clog.V(2) {
		clog.Infof("graphtype: %s: inserted node %d of type %q", g.name, n.ID, n.Type.Name())
	}
	return n.ID, nil
}

// connects reports whether e admits an edge between nodes of the given types.
func (g *Graph) connects(e *element.EdgeType, tail, head *element.NodeType) bool {
	s := g.gt.schema
	if s.NodeLeq(tail, e.Tail()) && s.NodeLeq(head, e.Head()) {
		return true
	}
	return !e.IsDirected() && s.NodeLeq(tail, e.Head()) && s.NodeLeq(head, e.Tail())
}

func (g *Graph) endpoints(tail, head NodeID) (*Node, *Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t, ok := g.nodes.Get(tail)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownNode, tail)
	}
	h, ok := g.nodes.Get(head)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownNode, head)
	}
	return t, h, nil
}

// InsertEdge resolves an instance among the edge types connecting the types of
// its endpoint nodes and stores it.
func (g *Graph) InsertEdge(tail, head NodeID, in spectral.Instance) (EdgeID, error) {
	t, h, err := g.endpoints(tail, head)
	if err != nil {
		return 0, err
	}
	var scope []element.ElementType
	for _, e := range g.gt.schema.Edges() {
		if g.connects(e, t.Type, h.Type) {
			scope = append(scope, e)
		}
	}
	if len(scope) == 0 {
		return 0, &EndpointMismatchError{Tail: t.Type, Head: h.Type}
	}
	return g.insertEdge(t, h, in, g.gt.validator.Resolve(in, scope))
}

// InsertEdgeAs validates an instance against a declared edge type under the graph
// type's mode and stores it. The endpoint node types must be subtypes of the
// endpoint types of the resolved edge type.
func (g *Graph) InsertEdgeAs(tail, head NodeID, in spectral.Instance, et *element.EdgeType) (EdgeID, error) {
	t, h, err := g.endpoints(tail, head)
	if err != nil {
		return 0, err
	}
	return g.insertEdge(t, h, in, g.gt.validator.Validate(in, et, g.gt.mode))
}

func (g *Graph) insertEdge(t, h *Node, in spectral.Instance, r spectral.Result) (EdgeID, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	et := r.Type.(*element.EdgeType)
	if !g.connects(et, t.Type, h.Type) {
		return 0, &EndpointMismatchError{Tail: t.Type, Head: h.Type, Edge: et}
	}
	if err := g.gt.checkKeys(in, et); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastEdge++
	e := &Edge{ID: g.lastEdge, Type: et, Tail: t.ID, Head: h.ID, Instance: cloneInstance(in)}
	g.edges.Put(e.ID, e)
	if clog.V(2) {
		clog.Infof("graphtype: %s: inserted edge %d of type %q (%d -> %d)", g.name, e.ID, et.Name(), t.ID, h.ID)
	}
	return e.ID, nil
}

// Node returns a node by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes.Get(id)
}

// Edge returns an edge by id.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges.Get(id)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes.Values()
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges.Values()
}

// Check verifies the cardinality constraints of the graph type against the whole
// graph and returns every violation. Undirected edges count at both endpoints.
func (g *Graph) Check() []error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var errs []error
	s := g.gt.schema
	for _, cc := range g.gt.cardinality {
		undirected := !cc.Edge.IsDirected()
		counts := make(map[NodeID]int)
		g.edges.Each(func(_ EdgeID, e *Edge) bool {
			if s.Leq(e.Type, cc.Edge) {
				counts[e.Tail]++
				if undirected && e.Head != e.Tail {
					counts[e.Head]++
				}
			}
			return true
		})
		g.nodes.Each(func(id NodeID, n *Node) bool {
			if !s.NodeLeq(n.Type, cc.Edge.Tail()) && !(undirected && s.NodeLeq(n.Type, cc.Edge.Head())) {
				return true
			}
			c := counts[id]
			if c < cc.Min || (cc.Max != 0 && c > cc.Max) {
				errs = append(errs, &CardinalityError{Constraint: cc, Node: id, Count: c})
			}
			return true
		})
	}
	return errs
}
