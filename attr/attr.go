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

// Package attr defines attribute types, the named and typed units that content
// types are composed of.
package attr

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName  = errors.New("attr: attribute type name is empty")
	ErrNoDatatype = errors.New("attr: property type has no datatype")
)

// Kind distinguishes labels from properties.
type Kind int

const (
	// Label is a nullary structural tag.
	Label = Kind(iota)
	// Property is a valued field.
	Property
)

func (k Kind) String() string {
	switch k {
	case Label:
		return "label"
	case Property:
		return "property"
	}
	return "invalid"
}

// Type is an attribute type. It is a comparable value and can be used as a map key.
// Two attribute types are equal iff their name, kind and datatype are equal.
//
// The zero value is not a valid attribute type.
type Type struct {
	name     string
	kind     Kind
	datatype Datatype
}

// NewLabel creates a label attribute type. Its datatype is always LabelDatatype.
func NewLabel(name string) (Type, error) {
	if name == "" {
		return Type{}, ErrEmptyName
	}
	return Type{name: name, kind: Label, datatype: LabelDatatype}, nil
}

// NewProperty creates a property attribute type with a given datatype.
// Datatype names are case-insensitive.
func NewProperty(name string, dt Datatype) (Type, error) {
	if name == "" {
		return Type{}, ErrEmptyName
	}
	dt = Datatype(strings.ToUpper(strings.TrimSpace(string(dt))))
	if dt == "" {
		return Type{}, ErrNoDatatype
	}
	return Type{name: name, kind: Property, datatype: dt}, nil
}

// MustLabel is like NewLabel, but panics on error.
func MustLabel(name string) Type {
	t, err := NewLabel(name)
	if err != nil {
		panic(err)
	}
	return t
}

// MustProperty is like NewProperty, but panics on error.
func MustProperty(name string, dt Datatype) Type {
	t, err := NewProperty(name, dt)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Type) Name() string       { return t.name }
func (t Type) Kind() Kind         { return t.kind }
func (t Type) Datatype() Datatype { return t.datatype }
func (t Type) IsLabel() bool      { return t.kind == Label }
func (t Type) IsProperty() bool   { return t.kind == Property }

// IsValid reports whether t was built by one of the constructors.
func (t Type) IsValid() bool { return t.name != "" && t.datatype != "" }

// WithName returns a copy of t with a different name.
func (t Type) WithName(name string) (Type, error) {
	if t.kind == Label {
		return NewLabel(name)
	}
	return NewProperty(name, t.datatype)
}

// WithDatatype returns a copy of t with a different datatype.
// Labels cannot be retyped and are returned unchanged.
func (t Type) WithDatatype(dt Datatype) (Type, error) {
	if t.kind == Label {
		return t, nil
	}
	return NewProperty(t.name, dt)
}

// String renders labels as ":Name" and properties as "name::DATATYPE".
func (t Type) String() string {
	if t.kind == Label {
		return ":" + t.name
	}
	return t.name + "::" + string(t.datatype)
}

// Less is a total order over attribute types: labels first, then by name and datatype.
func Less(a, b Type) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.datatype < b.datatype
}
