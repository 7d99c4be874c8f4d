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

package export

import (
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Class is a class of an exported hierarchy with links to its direct
// superclasses and subclasses.
type Class struct {
	name  quad.Value
	label string
	super map[*Class]struct{}
	sub   map[*Class]struct{}
}

func newClass(name quad.Value) *Class {
	return &Class{
		name:  name,
		super: map[*Class]struct{}{},
		sub:   map[*Class]struct{}{},
	}
}

// Name returns the class's IRI
func (c *Class) Name() quad.Value { return c.name }

// Label returns the rdfs:label of the class, if any
func (c *Class) Label() string { return c.label }

// IsSubClassOf recursively checks whether super is a superclass of c
func (c *Class) IsSubClassOf(super *Class) bool {
	if c == super {
		return true
	}
	if _, ok := c.super[super]; ok {
		return true
	}
	for s := range c.super {
		if s.IsSubClassOf(super) {
			return true
		}
	}
	return false
}

// Hierarchy is a class hierarchy read back from exported quads. It lets
// consumers of an export answer subtype queries without the lattice itself.
type Hierarchy struct {
	classes map[quad.Value]*Class
	order   []*Class
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{classes: map[quad.Value]*Class{}}
}

// Class returns the class with a given name, or nil.
func (h *Hierarchy) Class(name quad.Value) *Class {
	return h.classes[name]
}

// Classes returns every class in the order it was first seen.
func (h *Hierarchy) Classes() []*Class {
	return append([]*Class(nil), h.order...)
}

func (h *Hierarchy) addClass(name quad.Value) *Class {
	if c, ok := h.classes[name]; ok {
		return c
	}
	c := newClass(name)
	h.classes[name] = c
	h.order = append(h.order, c)
	return c
}

func (h *Hierarchy) addClassRelationship(child, parent quad.Value) {
	p := h.addClass(parent)
	c := h.addClass(child)
	if _, ok := p.sub[c]; !ok {
		p.sub[c] = struct{}{}
		c.super[p] = struct{}{}
	}
}

// ProcessQuad updates the hierarchy with a quad. Only class declarations, labels
// and subclass statements are used.
func (h *Hierarchy) ProcessQuad(q quad.Quad) {
	p, ok := q.Predicate.(quad.IRI)
	if !ok {
		return
	}
	switch p.Full() {
	case iri(rdf.Type):
		if o, ok := q.Object.(quad.IRI); ok && o.Full() == iri(rdfs.Class) {
			h.addClass(q.Subject)
		}
	case iri(rdfs.SubClassOf):
		h.addClassRelationship(q.Subject, q.Object)
	case iri(rdfs.Label):
		if c, ok := h.classes[q.Subject]; ok {
			c.label = quad.ToString(q.Object)
		}
	}
}

// ReadHierarchy reads every quad of r into a new hierarchy.
func ReadHierarchy(r quad.Reader) (*Hierarchy, error) {
	h := NewHierarchy()
	for {
		q, err := r.ReadQuad()
		if err == io.EOF {
			return h, nil
		} else if err != nil {
			return nil, err
		}
		h.ProcessQuad(q)
	}
}
