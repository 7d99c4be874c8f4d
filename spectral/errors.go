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

package spectral

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alastai/grasch-lex/attr"
	"github.com/alastai/grasch-lex/element"
)

var (
	// ErrNoConformingType is returned when no element type in scope accepts an instance.
	ErrNoConformingType = errors.New("spectral: no conforming element type")
	// ErrUnknownElementType is returned for element types that are not part of the
	// validator's schema.
	ErrUnknownElementType = errors.New("spectral: element type is not in schema")
	ErrInvalidMode        = errors.New("spectral: invalid conformance mode")
)

func attrList(list []attr.Type) string {
	strs := make([]string, len(list))
	for i, a := range list {
		strs[i] = a.String()
	}
	return strings.Join(strs, ", ")
}

func typeNames(list []element.ElementType) string {
	strs := make([]string, len(list))
	for i, t := range list {
		strs[i] = t.Name()
	}
	return strings.Join(strs, ", ")
}

// MissingMandatoryAttributeError is returned when an instance lacks non-nullable
// attributes of the type it was resolved to.
type MissingMandatoryAttributeError struct {
	Type       element.ElementType
	Attributes []attr.Type
}

func (e *MissingMandatoryAttributeError) Error() string {
	return fmt.Sprintf("instance of %s %q is missing mandatory attributes: %s",
		e.Type.Kind(), e.Type.Name(), attrList(e.Attributes))
}

// UnexpectedAttributeError is returned when an instance carries attributes outside
// the complete attribute set of the type it was resolved to.
type UnexpectedAttributeError struct {
	Type       element.ElementType
	Attributes []attr.Type
}

func (e *UnexpectedAttributeError) Error() string {
	return fmt.Sprintf("instance of %s %q has unexpected attributes: %s",
		e.Type.Kind(), e.Type.Name(), attrList(e.Attributes))
}

// AmbiguousConformanceError is returned when an instance conforms to several
// element types and not all of them are keyed.
type AmbiguousConformanceError struct {
	Candidates []element.ElementType
}

func (e *AmbiguousConformanceError) Error() string {
	return fmt.Sprintf("instance conforms to several element types: %s", typeNames(e.Candidates))
}

// AmbiguousKeyMatchError is returned when the key labels of an instance do not
// select exactly one of several keyed candidates.
type AmbiguousKeyMatchError struct {
	Candidates []element.ElementType
	Matches    []element.ElementType
}

func (e *AmbiguousKeyMatchError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("instance carries no key of candidates: %s", typeNames(e.Candidates))
	}
	return fmt.Sprintf("instance carries keys of several candidates: %s", typeNames(e.Matches))
}

// AbstractTypeDirectInstantiationError is returned when an instance realizes an
// abstract element type itself rather than one of its proper subtypes.
type AbstractTypeDirectInstantiationError struct {
	Type element.ElementType
}

func (e *AbstractTypeDirectInstantiationError) Error() string {
	return fmt.Sprintf("%s type %q cannot be instantiated directly", e.Type.Kind(), e.Type.Name())
}
