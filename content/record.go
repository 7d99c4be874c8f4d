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

package content

import "github.com/alastai/grasch-lex/attr"

// RecordField is a flattened attribute fact produced by a record-schema processor.
type RecordField struct {
	Name      string
	Datatype  attr.Datatype
	Mandatory bool
}

// RecordSchema is implemented by record-schema processors that resolve their
// nested structure into flat attribute facts.
type RecordSchema interface {
	RecordFields() ([]RecordField, error)
}

// RecordFields is a static RecordSchema.
type RecordFields []RecordField

func (r RecordFields) RecordFields() ([]RecordField, error) { return r, nil }

// FromRecord creates a content type whose label subset is given by labels and
// whose property subset is populated from a record schema.
func FromRecord(name string, labels []Field, rs RecordSchema, key ...attr.Type) (*ContentType, error) {
	rec, err := rs.RecordFields()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(labels)+len(rec))
	for _, l := range labels {
		if !l.Type.IsLabel() {
			return nil, &InvalidKeyError{Content: name, Label: l.Type, Reason: "record labels must be label types"}
		}
		fields = append(fields, l)
	}
	for i, f := range rec {
		t, err := attr.NewProperty(f.Name, f.Datatype)
		if err != nil {
			return nil, &RecordFieldError{Index: i, Field: f, Err: err}
		}
		fields = append(fields, Field{Type: t, Mandatory: f.Mandatory})
	}
	return New(name, fields, key...)
}
