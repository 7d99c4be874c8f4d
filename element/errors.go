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
	"errors"
	"fmt"

	"github.com/alastai/grasch-lex/lattice"
)

var (
	ErrEmptyName          = errors.New("element: element type name is empty")
	ErrNilContentType     = errors.New("element: nil content type")
	ErrInvalidOrientation = errors.New("element: invalid orientation")
)

// DuplicateElementContentTypeError is returned when two distinct element types of
// the same kind would be identified by the same content.
type DuplicateElementContentTypeError struct {
	Kind     Kind
	Name     string
	Existing string
	Handle   lattice.Handle
}

func (e *DuplicateElementContentTypeError) Error() string {
	return fmt.Sprintf("%s type %q has the same content type as %q", e.Kind, e.Name, e.Existing)
}

// DuplicateNameError is returned when a name is reused for a different element type.
type DuplicateNameError struct {
	Kind Kind
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s type %q is already defined", e.Kind, e.Name)
}

// OrientationMismatchError is returned when edge types of different orientation
// are compared.
type OrientationMismatchError struct {
	Sub, Super *EdgeType
}

func (e *OrientationMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %s edge type %q with %s edge type %q",
		e.Sub.orientation, e.Sub.name, e.Super.orientation, e.Super.name)
}

// IncompatibleEndpointError is returned when an endpoint of an edge type is not a
// node type registered with the same deriver.
type IncompatibleEndpointError struct {
	Edge     string
	Endpoint *NodeType
}

func (e *IncompatibleEndpointError) Error() string {
	if e.Endpoint == nil {
		return fmt.Sprintf("edge type %q has a nil endpoint", e.Edge)
	}
	return fmt.Sprintf("endpoint %q of edge type %q is not registered in this schema", e.Endpoint.name, e.Edge)
}
