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

package attr

import "github.com/cayleygraph/quad"

// Datatype names the value domain of an attribute type.
type Datatype string

// LabelDatatype is the constant datatype shared by all labels.
const LabelDatatype = Datatype("LABEL_TYPE")

// Well-known property datatypes.
const (
	String   = Datatype("STRING")
	Integer  = Datatype("INTEGER")
	Float    = Datatype("FLOAT")
	Boolean  = Datatype("BOOLEAN")
	Date     = Datatype("DATE")
	DateTime = Datatype("DATETIME")
	IRI      = Datatype("IRI")
	Any      = Datatype("ANY")
)

// IsKnown reports whether values of the datatype can be checked.
func (d Datatype) IsKnown() bool {
	switch d {
	case String, Integer, Float, Boolean, Date, DateTime, IRI, Any:
		return true
	}
	return false
}

// Accepts reports whether v is a legal value for the datatype.
// Nil is never accepted; unknown datatypes accept any other value.
func (d Datatype) Accepts(v quad.Value) bool {
	if v == nil {
		return false
	}
	switch d {
	case LabelDatatype:
		return false
	case String:
		switch v.(type) {
		case quad.String, quad.LangString, quad.TypedString:
			return true
		}
		return false
	case Integer:
		_, ok := v.(quad.Int)
		return ok
	case Float:
		switch v.(type) {
		case quad.Float, quad.Int:
			return true
		}
		return false
	case Boolean:
		_, ok := v.(quad.Bool)
		return ok
	case Date, DateTime:
		_, ok := v.(quad.Time)
		return ok
	case IRI:
		_, ok := v.(quad.IRI)
		return ok
	}
	return true
}

// DatatypeOf infers the narrowest well-known datatype for a value.
func DatatypeOf(v quad.Value) Datatype {
	switch v.(type) {
	case quad.String, quad.LangString, quad.TypedString:
		return String
	case quad.Int:
		return Integer
	case quad.Float:
		return Float
	case quad.Bool:
		return Boolean
	case quad.Time:
		return DateTime
	case quad.IRI:
		return IRI
	}
	return Any
}
