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

package graphtype

import (
	"fmt"
	"strings"

	"github.com/alastai/grasch-lex/element"
)

// KeyConstraintError is returned when an instance lacks attributes named by a key
// constraint.
type KeyConstraintError struct {
	Type       element.ElementType
	Constraint element.ElementType
	Missing    []string
}

func (e *KeyConstraintError) Error() string {
	return fmt.Sprintf("key constraint on %s %q violated by %q instance: missing %s",
		e.Constraint.Kind(), e.Constraint.Name(), e.Type.Name(), strings.Join(e.Missing, ", "))
}

// EndpointMismatchError is returned when no edge type of the graph type connects
// the types of the given endpoint nodes.
type EndpointMismatchError struct {
	Tail, Head *element.NodeType
	// Edge is the declared edge type, if any.
	Edge *element.EdgeType
}

func (e *EndpointMismatchError) Error() string {
	if e.Edge != nil {
		return fmt.Sprintf("edge type %q does not connect %q to %q", e.Edge.Name(), e.Tail.Name(), e.Head.Name())
	}
	return fmt.Sprintf("no edge type connects %q to %q", e.Tail.Name(), e.Head.Name())
}

// CardinalityError reports a tail node with too few or too many edges of a type.
type CardinalityError struct {
	Constraint CardinalityConstraint
	Node       NodeID
	Count      int
}

func (e *CardinalityError) Error() string {
	max := "*"
	if e.Constraint.Max != 0 {
		max = fmt.Sprint(e.Constraint.Max)
	}
	return fmt.Sprintf("node %d has %d %q edges, want [%d, %s]",
		e.Node, e.Count, e.Constraint.Edge.Name(), e.Constraint.Min, max)
}
