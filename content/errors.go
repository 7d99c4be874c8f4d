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

import (
	"fmt"

	"github.com/alastai/grasch-lex/attr"
)

// InvalidKeyError is returned when a key label is not a label attribute type of
// the content type, or when a keyed element type is required.
type InvalidKeyError struct {
	Content string
	Label   attr.Type
	Reason  string
}

func (e *InvalidKeyError) Error() string {
	if !e.Label.IsValid() {
		return fmt.Sprintf("invalid key for %q: %s", e.Content, e.Reason)
	}
	return fmt.Sprintf("invalid key label %s for %q: %s", e.Label, e.Content, e.Reason)
}

// ConflictingAttributeError is returned when a content type would hold two
// properties with the same name and different datatypes.
type ConflictingAttributeError struct {
	Content   string
	Name      string
	Datatypes [2]attr.Datatype
}

func (e *ConflictingAttributeError) Error() string {
	return fmt.Sprintf("property %q of %q declared as both %s and %s", e.Name, e.Content, e.Datatypes[0], e.Datatypes[1])
}

// RecordFieldError is returned when a record schema produces an invalid field.
type RecordFieldError struct {
	Index int
	Field RecordField
	Err   error
}

func (e *RecordFieldError) Error() string {
	return fmt.Sprintf("record field %d (%q): %v", e.Index, e.Field.Name, e.Err)
}

func (e *RecordFieldError) Unwrap() error { return e.Err }
