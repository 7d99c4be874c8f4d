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

// Package element derives node and edge types from a content type lattice.
package element

import (
	"fmt"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/lattice"
)

// Kind distinguishes node types from edge types.
type Kind int

const (
	NodeKind = Kind(iota)
	EdgeKind
)

func (k Kind) String() string {
	switch k {
	case NodeKind:
		return "node"
	case EdgeKind:
		return "edge"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Orientation tells whether an edge type has a direction.
type Orientation int

const (
	Undirected = Orientation(iota)
	// Directed edges point from their tail to their head.
	Directed
)

func (o Orientation) String() string {
	switch o {
	case Undirected:
		return "undirected"
	case Directed:
		return "directed"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Direction maps the (first, second) endpoints of an edge declaration onto
// (tail, head).
type Direction int

const (
	// FirstToSecond makes the first endpoint the tail.
	FirstToSecond = Direction(iota)
	// SecondToFirst makes the second endpoint the tail.
	SecondToFirst
)

// ElementType is either a *NodeType or an *EdgeType.
type ElementType interface {
	Name() string
	Kind() Kind
	// Content returns the identifying content type: the content type of a node
	// type or the arc of an edge type.
	Content() *content.ContentType
	// Handle returns the lattice member of Content.
	Handle() lattice.Handle
	// Key returns the type key.
	Key() []attr.Type
	// Abstract reports whether the type may only be realized through a subtype.
	Abstract() bool

	isElementType()
}

var (
	_ ElementType = (*NodeType)(nil)
	_ ElementType = (*EdgeType)(nil)
)

// NodeType is an element type identified by a single content type.
type NodeType struct {
	name     string
	content  *content.ContentType
	handle   lattice.Handle
	abstract bool
}

func (*NodeType) isElementType() {}

func (n *NodeType) Name() string                  { return n.name }
func (n *NodeType) Kind() Kind                    { return NodeKind }
func (n *NodeType) Content() *content.ContentType { return n.content }
func (n *NodeType) Handle() lattice.Handle        { return n.handle }
func (n *NodeType) Key() []attr.Type              { return n.content.Key() }
func (n *NodeType) Abstract() bool                { return n.abstract }

func (n *NodeType) String() string {
	return fmt.Sprintf("(%s %v)", n.name, n.content.ID())
}

// EdgeType is an element type identified by the triple of its tail node type,
// arc content type and head node type.
type EdgeType struct {
	name        string
	tail, head  *NodeType
	arc         *content.ContentType
	handle      lattice.Handle
	orientation Orientation
	abstract    bool
}

func (*EdgeType) isElementType() {}

func (e *EdgeType) Name() string                  { return e.name }
func (e *EdgeType) Kind() Kind                    { return EdgeKind }
func (e *EdgeType) Content() *content.ContentType { return e.arc }
func (e *EdgeType) Handle() lattice.Handle        { return e.handle }
func (e *EdgeType) Key() []attr.Type              { return e.arc.Key() }
func (e *EdgeType) Abstract() bool                { return e.abstract }

func (e *EdgeType) Tail() *NodeType           { return e.tail }
func (e *EdgeType) Head() *NodeType           { return e.head }
func (e *EdgeType) Arc() *content.ContentType { return e.arc }
func (e *EdgeType) Orientation() Orientation  { return e.orientation }
func (e *EdgeType) IsDirected() bool          { return e.orientation == Directed }

func (e *EdgeType) String() string {
	if e.orientation == Directed {
		return fmt.Sprintf("(%s)-[%s %v]->(%s)", e.tail.name, e.name, e.arc.ID(), e.head.name)
	}
	return fmt.Sprintf("(%s)~[%s %v]~(%s)", e.tail.name, e.name, e.arc.ID(), e.head.name)
}

// Option configures a derived element type.
type Option func(*options)

type options struct {
	abstract bool
}

// Abstract marks an element type as abstract: instances must conform to one of
// its strict subtypes.
func Abstract() Option {
	return func(o *options) { o.abstract = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
