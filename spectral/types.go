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

// Package spectral validates graph element instances against element types.
//
// Every element type spans a conformance interval between its complete content
// type (all attributes) and its mandatory content type (non-nullable attributes
// only). An instance conforms to a type when the attributes it actually carries
// lie within that interval.
package spectral

import (
	"github.com/cayleygraph/quad"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/element"
)

// Type is the conformance interval of an element type. CCRT is always a subtype
// of MCRT.
type Type struct {
	CCRT *content.ContentType
	MCRT *content.ContentType
}

// Of computes the conformance interval of an element type.
func Of(et element.ElementType) Type {
	c := et.Content()
	return Type{CCRT: c, MCRT: c.MandatoryPart()}
}

// Contains reports whether an induced instance content type lies within the
// interval, that is, whether it carries every mandatory attribute and nothing
// outside the complete attribute set.
func (t Type) Contains(it *content.ContentType) bool {
	if it.IsNone() || t.CCRT.IsNone() {
		return false
	}
	return t.MCRT.IsSubsetOf(it) && it.IsSubsetOf(t.CCRT)
}

// missing returns the mandatory attributes absent from it.
func (t Type) missing(it *content.ContentType) []attr.Type {
	var out []attr.Type
	for _, a := range t.MCRT.Attributes() {
		if !it.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// unexpected returns the attributes of it outside the complete attribute set.
func (t Type) unexpected(it *content.ContentType) []attr.Type {
	var out []attr.Type
	for _, a := range it.Attributes() {
		if !t.CCRT.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Instance is a node or edge record to be validated. Nil property values are
// treated as absent.
type Instance struct {
	Labels     []string
	Properties map[string]quad.Value
}

// HasLabel reports whether the instance carries a label.
func (in Instance) HasLabel(name string) bool {
	return slices.Contains(in.Labels, name)
}

// Value returns a present property value.
func (in Instance) Value(name string) (quad.Value, bool) {
	v, ok := in.Properties[name]
	return v, ok && v != nil
}

// Induce returns the content type formed by the attributes actually present on the
// instance. Property values are typed by the declaration of ct when the declared
// datatype accepts them, and by their own datatype otherwise. A nil ct types every
// value by its own datatype.
func (in Instance) Induce(ct *content.ContentType) (*content.ContentType, error) {
	fields := make([]content.Field, 0, len(in.Labels)+len(in.Properties))
	for _, l := range in.Labels {
		t, err := attr.NewLabel(l)
		if err != nil {
			return nil, err
		}
		fields = append(fields, content.Mandatory(t))
	}
	names := maps.Keys(in.Properties)
	slices.Sort(names)
	for _, name := range names {
		v, ok := in.Value(name)
		if !ok {
			continue
		}
		if ct != nil {
			if p, ok := ct.Property(name); ok && p.Datatype().Accepts(v) {
				fields = append(fields, content.Mandatory(p))
				continue
			}
		}
		t, err := attr.NewProperty(name, attr.DatatypeOf(v))
		if err != nil {
			return nil, err
		}
		fields = append(fields, content.Mandatory(t))
	}
	return content.New("", fields)
}
