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
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/alastai/grasch-lex/lattice"
)

const (
	NS     = "urn:grasch:"
	Prefix = "grasch:"
)

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NodeTypeClass = Prefix + "NodeType"
	EdgeTypeClass = Prefix + "EdgeType"

	Attribute = Prefix + "attribute"
	Mandatory = Prefix + "mandatory"
	Key       = Prefix + "key"
	ID        = Prefix + "id"
	Content   = Prefix + "content"
	Tail      = Prefix + "tail"
	Head      = Prefix + "head"
	Arc       = Prefix + "arc"
	Directed  = Prefix + "directed"
	Abstract  = Prefix + "abstract"
)

func iri(s string) quad.IRI { return quad.IRI(s).Full() }

// MemberIRI returns the IRI of a lattice member.
func MemberIRI(h lattice.Handle) quad.IRI { return quad.IRI(fmt.Sprintf("%smember/%d", NS, h)) }

// NodeTypeIRI returns the IRI of a node type.
func NodeTypeIRI(name string) quad.IRI { return quad.IRI(NS + "node/" + name) }

// EdgeTypeIRI returns the IRI of an edge type.
func EdgeTypeIRI(name string) quad.IRI { return quad.IRI(NS + "edge/" + name) }

// Quads materializes a listing as RDF. Every member is an rdfs:Class and every
// direct order edge an rdfs:subClassOf statement.
func (l Listing) Quads() []quad.Quad {
	var (
		typ      = iri(rdf.Type)
		label    = iri(rdfs.Label)
		subClass = iri(rdfs.SubClassOf)
		class    = iri(rdfs.Class)
	)
	var out []quad.Quad
	add := func(s quad.Value, p quad.IRI, o quad.Value) {
		out = append(out, quad.Quad{Subject: s, Predicate: p, Object: o})
	}
	for _, m := range l.Members {
		s := MemberIRI(m.Handle)
		add(s, typ, class)
		add(s, iri(ID), quad.String(m.ID))
		name := m.Name
		if name == "" {
			name = m.ID
		}
		add(s, label, quad.String(name))
		for _, a := range m.Attributes {
			add(s, iri(Attribute), quad.String(a))
		}
		for _, a := range m.Mandatory {
			add(s, iri(Mandatory), quad.String(a))
		}
		for _, a := range m.Key {
			add(s, iri(Key), quad.String(a))
		}
		for _, sup := range m.Supertypes {
			add(s, subClass, MemberIRI(sup))
		}
	}
	for _, n := range l.Nodes {
		s := NodeTypeIRI(n.Name)
		add(s, typ, iri(NodeTypeClass))
		add(s, label, quad.String(n.Name))
		add(s, iri(Content), MemberIRI(n.Content))
		if n.Abstract {
			add(s, iri(Abstract), quad.Bool(true))
		}
	}
	for _, e := range l.Edges {
		s := EdgeTypeIRI(e.Name)
		add(s, typ, iri(EdgeTypeClass))
		add(s, label, quad.String(e.Name))
		add(s, iri(Tail), NodeTypeIRI(e.Tail))
		add(s, iri(Head), NodeTypeIRI(e.Head))
		add(s, iri(Arc), MemberIRI(e.Arc))
		add(s, iri(Directed), quad.Bool(e.Directed))
		if e.Abstract {
			add(s, iri(Abstract), quad.Bool(true))
		}
	}
	return out
}

// WriteQuads writes the quads of a listing and returns how many were written.
func WriteQuads(w quad.Writer, l Listing) (int, error) {
	return quad.Copy(w, quad.NewReader(l.Quads()))
}
