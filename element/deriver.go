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
	"sync"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/lattice"
)

// triple identifies an edge type up to duplicate detection.
type triple struct {
	tail, arc, head lattice.Handle
	orientation     Orientation
}

func tripleOf(tail, head *NodeType, arc lattice.Handle, o Orientation) triple {
	t, h := tail.handle, head.handle
	if o == Undirected && h < t {
		t, h = h, t
	}
	return triple{tail: t, arc: arc, head: h, orientation: o}
}

// Deriver registers node and edge types over a lattice builder. Mutations are
// serialized; Schema returns immutable views for readers.
type Deriver struct {
	mu          sync.Mutex
	lattice     *lattice.Builder
	requireKeys bool

	nodes         []*NodeType
	edges         []*EdgeType
	nodeByName    map[string]*NodeType
	edgeByName    map[string]*EdgeType
	nodeByContent map[lattice.Handle]*NodeType
	edgeByTriple  map[triple]*EdgeType

	schema *Schema
}

// DeriverOption configures a Deriver.
type DeriverOption func(*Deriver)

// RequireKeys enforces the ALL ELEMENT TYPES KEYED policy: every node type and
// every edge type arc must carry a non-empty key label set.
func RequireKeys() DeriverOption {
	return func(d *Deriver) { d.requireKeys = true }
}

// NewDeriver creates a deriver over b. A new builder is created if b is nil.
func NewDeriver(b *lattice.Builder, opts ...DeriverOption) *Deriver {
	if b == nil {
		b = lattice.NewBuilder()
	}
	d := &Deriver{
		lattice:       b,
		nodeByName:    make(map[string]*NodeType),
		edgeByName:    make(map[string]*EdgeType),
		nodeByContent: make(map[lattice.Handle]*NodeType),
		edgeByTriple:  make(map[triple]*EdgeType),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lattice returns the underlying lattice builder.
func (d *Deriver) Lattice() *lattice.Builder { return d.lattice }

func (d *Deriver) checkKey(name string, ct *content.ContentType) error {
	if d.requireKeys && !ct.HasKey() {
		return &content.InvalidKeyError{Content: name, Reason: "all element types must be keyed"}
	}
	return nil
}

// DeriveNodeType registers a node type. Registering the same name with an equal
// content type again returns the existing node type.
func (d *Deriver) DeriveNodeType(name string, ct *content.ContentType, opts ...Option) (*NodeType, error) {
	switch {
	case name == "":
		return nil, ErrEmptyName
	case ct == nil:
		return nil, ErrNilContentType
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.nodeByName[name]; ok {
		if prev.content.Equal(ct) {
			return prev, nil
		}
		return nil, &DuplicateNameError{Kind: NodeKind, Name: name}
	}
	if err := d.checkKey(name, ct); err != nil {
		return nil, err
	}
	if h, ok := d.lattice.Snapshot().Lookup(ct); ok {
		if prev, ok := d.nodeByContent[h]; ok {
			return nil, &DuplicateElementContentTypeError{Kind: NodeKind, Name: name, Existing: prev.name, Handle: h}
		}
	}
	h, err := d.lattice.Register(ct)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	n := &NodeType{name: name, content: ct, handle: h, abstract: o.abstract}
	d.nodes = append(d.nodes, n)
	d.nodeByName[name] = n
	d.nodeByContent[h] = n
	d.schema = nil
	if clog.V(1) {
		clog.Infof("element: derived node type %v", n)
	}
	return n, nil
}

// DeriveEdgeType registers an edge type. Both endpoints must be node types
// derived by d. Edge types may share an arc content type as long as their
// (tail, arc, head, orientation) triples differ.
func (d *Deriver) DeriveEdgeType(name string, tail *NodeType, arc *content.ContentType, head *NodeType, o Orientation, opts ...Option) (*EdgeType, error) {
	switch {
	case name == "":
		return nil, ErrEmptyName
	case arc == nil:
		return nil, ErrNilContentType
	case o != Directed && o != Undirected:
		return nil, ErrInvalidOrientation
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, end := range []*NodeType{tail, head} {
		if end == nil || d.nodeByName[end.name] != end {
			return nil, &IncompatibleEndpointError{Edge: name, Endpoint: end}
		}
	}
	if prev, ok := d.edgeByName[name]; ok {
		if prev.arc.Equal(arc) && prev.orientation == o && tripleOf(prev.tail, prev.head, 0, o) == tripleOf(tail, head, 0, o) {
			return prev, nil
		}
		return nil, &DuplicateNameError{Kind: EdgeKind, Name: name}
	}
	if err := d.checkKey(name, arc); err != nil {
		return nil, err
	}
	if h, ok := d.lattice.Snapshot().Lookup(arc); ok {
		if prev, ok := d.edgeByTriple[tripleOf(tail, head, h, o)]; ok {
			return nil, &DuplicateElementContentTypeError{Kind: EdgeKind, Name: name, Existing: prev.name, Handle: h}
		}
	}
	h, err := d.lattice.Register(arc)
	if err != nil {
		return nil, err
	}
	opt := buildOptions(opts)
	e := &EdgeType{name: name, tail: tail, head: head, arc: arc, handle: h, orientation: o, abstract: opt.abstract}
	d.edges = append(d.edges, e)
	d.edgeByName[name] = e
	d.edgeByTriple[tripleOf(tail, head, h, o)] = e
	d.schema = nil
	if clog.V(1) {
		clog.Infof("element: derived edge type %v", e)
	}
	return e, nil
}

// DeriveDirectedEdgeType registers a directed edge type declared over (first,
// second) endpoints, with dir telling which of them is the tail.
func (d *Deriver) DeriveDirectedEdgeType(name string, first *NodeType, arc *content.ContentType, second *NodeType, dir Direction, opts ...Option) (*EdgeType, error) {
	switch dir {
	case FirstToSecond:
		return d.DeriveEdgeType(name, first, arc, second, Directed, opts...)
	case SecondToFirst:
		return d.DeriveEdgeType(name, second, arc, first, Directed, opts...)
	}
	return nil, ErrInvalidOrientation
}

// Schema returns an immutable view of the derived element types over the current
// lattice snapshot.
func (d *Deriver) Schema() *Schema {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := d.lattice.Snapshot()
	if d.schema != nil && d.schema.lattice == snap {
		return d.schema
	}
	s := &Schema{
		lattice:     snap,
		nodes:       append([]*NodeType(nil), d.nodes...),
		edges:       append([]*EdgeType(nil), d.edges...),
		nodeByName:  make(map[string]*NodeType, len(d.nodes)),
		edgeByName:  make(map[string]*EdgeType, len(d.edges)),
		requireKeys: d.requireKeys,
	}
	for k, v := range d.nodeByName {
		s.nodeByName[k] = v
	}
	for k, v := range d.edgeByName {
		s.edgeByName[k] = v
	}
	d.schema = s
	return s
}
