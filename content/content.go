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

// Package content implements content types: immutable, structurally compared
// sets of attribute types with an optional key label subset.
package content

import (
	"sort"
	"strings"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/internal/mapset"
)

// Field is an attribute type together with its nullability in a content type.
type Field struct {
	Type      attr.Type
	Mandatory bool
}

// Mandatory is a convenience function for building a non-nullable field.
func Mandatory(t attr.Type) Field { return Field{Type: t, Mandatory: true} }

// Optional is a convenience function for building a nullable field.
func Optional(t attr.Type) Field { return Field{Type: t} }

// ContentType is an immutable set of attribute types. Two content types are equal
// iff their attribute sets are equal; name, key and nullability do not take part
// in equality.
type ContentType struct {
	name      string
	attrs     mapset.Set[attr.Type]
	mandatory mapset.Set[attr.Type]
	key       mapset.Set[attr.Type]
	id        string
	bottom    bool
}

var (
	// Any is the content type with the empty attribute set. It is the top of every lattice.
	Any = &ContentType{
		name:      "ANY_CONTENT_TYPE",
		attrs:     mapset.New[attr.Type](),
		mandatory: mapset.New[attr.Type](),
		key:       mapset.New[attr.Type](),
		id:        "{}",
	}
	// None is the uninhabitable content type. It is the bottom of every lattice.
	None = &ContentType{
		name:      "NO_CONTENT_TYPE",
		attrs:     mapset.New[attr.Type](),
		mandatory: mapset.New[attr.Type](),
		key:       mapset.New[attr.Type](),
		id:        "{⊥}",
		bottom:    true,
	}
)

// New creates a content type from a list of fields. Duplicate fields collapse into
// one, which is mandatory if any of the duplicates is. Labels named in key must be
// present among the fields and are always mandatory.
func New(name string, fields []Field, key ...attr.Type) (*ContentType, error) {
	c := &ContentType{
		name:      name,
		attrs:     mapset.New[attr.Type](),
		mandatory: mapset.New[attr.Type](),
		key:       mapset.New[attr.Type](),
	}
	props := make(map[string]attr.Type)
	for _, f := range fields {
		t := f.Type
		if !t.IsValid() {
			return nil, attr.ErrEmptyName
		}
		if t.IsProperty() {
			if prev, ok := props[t.Name()]; ok && prev != t {
				return nil, &ConflictingAttributeError{Content: name, Name: t.Name(), Datatypes: [2]attr.Datatype{prev.Datatype(), t.Datatype()}}
			}
			props[t.Name()] = t
		}
		c.attrs.Add(t)
		if f.Mandatory {
			c.mandatory.Add(t)
		}
	}
	for _, k := range key {
		if !k.IsLabel() {
			return nil, &InvalidKeyError{Content: name, Label: k, Reason: "not a label type"}
		}
		if !c.attrs.Contains(k) {
			return nil, &InvalidKeyError{Content: name, Label: k, Reason: "not an attribute of the content type"}
		}
		c.key.Add(k)
		c.mandatory.Add(k)
	}
	c.id = canonicalID(c.attrs)
	return c, nil
}

// MustNew is like New, but panics on error.
func MustNew(name string, fields []Field, key ...attr.Type) *ContentType {
	c, err := New(name, fields, key...)
	if err != nil {
		panic(err)
	}
	return c
}

func canonicalID(s mapset.Set[attr.Type]) string {
	list := s.ToSlice()
	strs := make([]string, len(list))
	for i, a := range list {
		strs[i] = a.String()
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ",") + "}"
}

func sortedAttrs(s mapset.Set[attr.Type]) []attr.Type {
	return s.Sorted(attr.Less)
}

// Name returns the display name of the content type, if any.
func (c *ContentType) Name() string { return c.name }

// ID returns the canonical form of the attribute set. Equal content types have equal IDs.
func (c *ContentType) ID() string { return c.id }

func (c *ContentType) String() string {
	if c.name == "" {
		return c.id
	}
	return c.name + c.id
}

// IsAny reports whether c has the empty attribute set.
func (c *ContentType) IsAny() bool { return !c.bottom && c.attrs.Len() == 0 }

// IsNone reports whether c is the uninhabitable bottom type.
func (c *ContentType) IsNone() bool { return c.bottom }

// Len returns the number of attribute types.
func (c *ContentType) Len() int { return c.attrs.Len() }

// Attributes returns all attribute types, labels first.
func (c *ContentType) Attributes() []attr.Type { return sortedAttrs(c.attrs) }

// Set returns a copy of the attribute set.
func (c *ContentType) Set() mapset.Set[attr.Type] { return c.attrs.Clone() }

// Labels returns the label attribute types.
func (c *ContentType) Labels() []attr.Type { return c.filter(attr.Label) }

// Properties returns the property attribute types.
func (c *ContentType) Properties() []attr.Type { return c.filter(attr.Property) }

func (c *ContentType) filter(k attr.Kind) []attr.Type {
	var out []attr.Type
	for _, a := range c.Attributes() {
		if a.Kind() == k {
			out = append(out, a)
		}
	}
	return out
}

// Contains reports whether the attribute type is in the set.
func (c *ContentType) Contains(t attr.Type) bool { return c.attrs.Contains(t) }

// Property returns the property attribute type with a given name.
func (c *ContentType) Property(name string) (attr.Type, bool) {
	for _, a := range c.Properties() {
		if a.Name() == name {
			return a, true
		}
	}
	return attr.Type{}, false
}

// Key returns the key label set.
func (c *ContentType) Key() []attr.Type { return sortedAttrs(c.key) }

// HasKey reports whether the key label set is not empty.
func (c *ContentType) HasKey() bool { return c.key.Len() != 0 }

// IsMandatory reports whether t is a non-nullable attribute of c.
func (c *ContentType) IsMandatory(t attr.Type) bool { return c.mandatory.Contains(t) }

// Mandatory returns the non-nullable attribute types.
func (c *ContentType) Mandatory() []attr.Type { return sortedAttrs(c.mandatory) }

// MandatoryPart returns the content type over the mandatory attributes of c only,
// keeping the key.
func (c *ContentType) MandatoryPart() *ContentType {
	if c.bottom {
		return c
	}
	m := &ContentType{
		name:      c.name,
		attrs:     c.mandatory.Clone(),
		mandatory: c.mandatory.Clone(),
		key:       c.key.Clone(),
	}
	m.id = canonicalID(m.attrs)
	return m
}

// IsSubsetOf reports whether the attribute set of c is included in that of o.
// None is treated as holding every attribute type.
func (c *ContentType) IsSubsetOf(o *ContentType) bool {
	switch {
	case o.bottom:
		return true
	case c.bottom:
		return false
	}
	return c.attrs.IsSubset(o.attrs)
}

// Equal reports whether both content types have the same attribute set.
func (c *ContentType) Equal(o *ContentType) bool {
	return c.bottom == o.bottom && c.id == o.id
}

// Leq reports whether c is a subtype of o, that is, whether c carries every
// attribute type of o.
func (c *ContentType) Leq(o *ContentType) bool { return o.IsSubsetOf(c) }

// Union returns the anonymous content type over the attributes of both c and o,
// which is their greatest lower bound. It returns None if either is None or if the
// union holds two properties of the same name with different datatypes.
func (c *ContentType) Union(o *ContentType) *ContentType {
	if c.bottom || o.bottom {
		return None
	}
	fields := make([]Field, 0, c.Len()+o.Len())
	for _, x := range []*ContentType{c, o} {
		for _, a := range x.Attributes() {
			fields = append(fields, Field{Type: a, Mandatory: x.IsMandatory(a)})
		}
	}
	u, err := New("", fields)
	if err != nil {
		return None
	}
	return u
}

// Intersect returns the anonymous content type over the attributes shared by c
// and o, which is their least upper bound.
func (c *ContentType) Intersect(o *ContentType) *ContentType {
	switch {
	case c.bottom:
		return o
	case o.bottom:
		return c
	}
	var fields []Field
	for _, a := range c.attrs.Intersect(o.attrs).Sorted(attr.Less) {
		fields = append(fields, Field{Type: a, Mandatory: c.IsMandatory(a) && o.IsMandatory(a)})
	}
	return MustNew("", fields)
}

// MergeDistinctFrom returns the member of existing with the same attribute set as
// c, or c itself if there is none.
func (c *ContentType) MergeDistinctFrom(existing []*ContentType) *ContentType {
	for _, e := range existing {
		if e.Equal(c) {
			return e
		}
	}
	return c
}
