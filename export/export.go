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

// Package export serializes a schema and its lattice as a listing or as RDF quads.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"

	"github.com/alastai/grasch-lex/element"
	"github.com/alastai/grasch-lex/lattice"
)

// Member describes one content type of the lattice.
type Member struct {
	Handle     lattice.Handle   `json:"handle"`
	ID         string           `json:"id"`
	Name       string           `json:"name,omitempty"`
	Attributes []string         `json:"attributes,omitempty"`
	Mandatory  []string         `json:"mandatory,omitempty"`
	Key        []string         `json:"key,omitempty"`
	Supertypes []lattice.Handle `json:"supertypes,omitempty"`
}

type NodeType struct {
	Name     string         `json:"name"`
	Content  lattice.Handle `json:"content"`
	Abstract bool           `json:"abstract,omitempty"`
}

type EdgeType struct {
	Name     string         `json:"name"`
	Tail     string         `json:"tail"`
	Head     string         `json:"head"`
	Arc      lattice.Handle `json:"arc"`
	Directed bool           `json:"directed"`
	Abstract bool           `json:"abstract,omitempty"`
}

// Listing is a serializable view of a schema: the lattice members with their
// direct supertypes, and the node and edge types over them.
type Listing struct {
	Version int        `json:"version"`
	Members []Member   `json:"members"`
	Nodes   []NodeType `json:"nodes,omitempty"`
	Edges   []EdgeType `json:"edges,omitempty"`
}

func strs[T fmt.Stringer](list []T) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.String()
	}
	return out
}

func handles(list []lattice.Handle) []lattice.Handle {
	if len(list) == 0 {
		return nil
	}
	return list
}

// Of builds the listing of a schema. Members are listed from the most general to
// the most specific.
func Of(s *element.Schema) Listing {
	snap := s.Lattice()
	l := Listing{Version: snap.Version()}
	for _, h := range snap.Members() {
		ct := snap.Content(h)
		l.Members = append(l.Members, Member{
			Handle:     h,
			ID:         ct.ID(),
			Name:       ct.Name(),
			Attributes: strs(ct.Attributes()),
			Mandatory:  strs(ct.Mandatory()),
			Key:        strs(ct.Key()),
			Supertypes: handles(snap.SupertypesOf(h, false)),
		})
	}
	for _, n := range s.Nodes() {
		l.Nodes = append(l.Nodes, NodeType{Name: n.Name(), Content: n.Handle(), Abstract: n.Abstract()})
	}
	for _, e := range s.Edges() {
		l.Edges = append(l.Edges, EdgeType{
			Name:     e.Name(),
			Tail:     e.Tail().Name(),
			Head:     e.Head().Name(),
			Arc:      e.Handle(),
			Directed: e.IsDirected(),
			Abstract: e.Abstract(),
		})
	}
	return l
}

// Write serializes a listing in a named format: "json" for the listing itself, or
// any registered quad format with a writer, such as "nquads" or "jsonld".
func Write(w io.Writer, format string, l Listing) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}
	if format == "quad" {
		format = "nquads"
	}
	f := quad.FormatByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %q", format)
	} else if f.Writer == nil {
		return fmt.Errorf("encoding in %s format is not supported", format)
	}
	qw := f.Writer(w)
	defer qw.Close()
	if _, err := WriteQuads(qw, l); err != nil {
		return err
	}
	return qw.Close()
}
