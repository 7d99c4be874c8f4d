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
	"fmt"
	"strings"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/element"
)

// Mode selects how an instance relates to its declared element type.
type Mode int

const (
	// ExactType requires the instance to conform to the declared type itself.
	ExactType = Mode(iota)
	// SubtypeConformant accepts instances of the declared type or any registered subtype.
	SubtypeConformant
	// ProperSubtypeConformant accepts only instances of strict registered subtypes.
	ProperSubtypeConformant
)

func (m Mode) String() string {
	switch m {
	case ExactType:
		return "exact"
	case SubtypeConformant:
		return "subtype"
	case ProperSubtypeConformant:
		return "proper-subtype"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with a given name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "exact", "exacttype":
		return ExactType, nil
	case "subtype", "subtypeconformant":
		return SubtypeConformant, nil
	case "proper-subtype", "propersubtype", "propersubtypeconformant":
		return ProperSubtypeConformant, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Result is the outcome of validating one instance.
type Result struct {
	Valid bool
	Mode  Mode
	// Declared is the type the instance was validated against, nil for Classify.
	Declared element.ElementType
	// Type is the element type the instance was resolved to, if any.
	Type element.ElementType
	// Content is the content type induced by the instance for Type.
	Content *content.ContentType
	Err     error
}

// Validator validates instances against the element types of one schema.
// It only reads the schema and is safe for concurrent use.
type Validator struct {
	schema *element.Schema
}

// NewValidator creates a validator over a schema.
func NewValidator(s *element.Schema) *Validator {
	return &Validator{schema: s}
}

// Schema returns the schema instances are validated against.
func (v *Validator) Schema() *element.Schema { return v.schema }

func (v *Validator) known(et element.ElementType) bool {
	switch et := et.(type) {
	case *element.NodeType:
		n, ok := v.schema.NodeType(et.Name())
		return ok && n == et
	case *element.EdgeType:
		e, ok := v.schema.EdgeType(et.Name())
		return ok && e == et
	}
	return false
}

// Validate checks an instance against a declared element type under a mode.
func (v *Validator) Validate(in Instance, et element.ElementType, mode Mode) Result {
	r := v.validate(in, et, mode)
	r.Mode, r.Declared = mode, et
	r.Valid = r.Err == nil
	mValidated.WithLabelValues(mode.String(), outcome(r.Err)).Inc()
	if r.Err != nil && et != nil && clog.V(2) {
		clog.Infof("spectral: %s validation against %q failed: %v", mode, et.Name(), r.Err)
	}
	return r
}

func (v *Validator) validate(in Instance, et element.ElementType, mode Mode) Result {
	if et == nil || !v.known(et) {
		return Result{Err: ErrUnknownElementType}
	}
	switch mode {
	case ExactType:
		return v.accept(in, et)
	case SubtypeConformant:
		return v.resolve(in, v.schema.SubtypesOf(et, false), et)
	case ProperSubtypeConformant:
		r := v.resolve(in, v.schema.SubtypesOf(et, true), nil)
		if r.Err != nil {
			// the instance realizes the declared type itself
			if d := v.check(in, et); d.Err == nil {
				return Result{Err: &AbstractTypeDirectInstantiationError{Type: et}}
			}
		}
		return r
	}
	return Result{Err: ErrInvalidMode}
}

// Classify resolves an instance against every registered element type of a kind.
func (v *Validator) Classify(in Instance, k element.Kind) Result {
	r := v.resolve(in, v.schema.ElementTypes(k), nil)
	r.Mode = SubtypeConformant
	r.Valid = r.Err == nil
	mValidated.WithLabelValues("classify", outcome(r.Err)).Inc()
	return r
}

// Resolve resolves an instance against an explicit set of candidate element types.
func (v *Validator) Resolve(in Instance, scope []element.ElementType) Result {
	r := v.resolve(in, scope, nil)
	r.Mode = SubtypeConformant
	r.Valid = r.Err == nil
	mValidated.WithLabelValues("resolve", outcome(r.Err)).Inc()
	return r
}

// ValidateBatch validates every instance against the same declared type. It
// returns one result per instance and never stops at a failure.
func (v *Validator) ValidateBatch(list []Instance, et element.ElementType, mode Mode) []Result {
	out := make([]Result, len(list))
	failed := 0
	for i, in := range list {
		out[i] = v.Validate(in, et, mode)
		if !out[i].Valid {
			failed++
		}
	}
	if et != nil && clog.V(1) {
		clog.Infof("spectral: validated %d instances against %q, %d failed", len(list), et.Name(), failed)
	}
	return out
}

// accept checks an instance against a single concrete type.
func (v *Validator) accept(in Instance, et element.ElementType) Result {
	if et.Abstract() {
		return Result{Type: et, Err: &AbstractTypeDirectInstantiationError{Type: et}}
	}
	return v.check(in, et)
}

// check checks an instance against the interval of a single type.
func (v *Validator) check(in Instance, et element.ElementType) Result {
	it, err := in.Induce(et.Content())
	if err != nil {
		return Result{Type: et, Err: err}
	}
	r := Result{Type: et, Content: it}
	st := Of(et)
	if st.Contains(it) {
		return r
	}
	if miss := st.missing(it); len(miss) != 0 {
		r.Err = &MissingMandatoryAttributeError{Type: et, Attributes: miss}
	} else {
		r.Err = &UnexpectedAttributeError{Type: et, Attributes: st.unexpected(it)}
	}
	return r
}

// admits reports whether every mandatory property of et is present on the
// instance with an accepted value.
func admits(in Instance, et element.ElementType) bool {
	c := et.Content()
	for _, p := range c.Properties() {
		if !c.IsMandatory(p) {
			continue
		}
		val, ok := in.Value(p.Name())
		if !ok || !p.Datatype().Accepts(val) {
			return false
		}
	}
	return true
}

// keyMatches reports whether the instance carries every key label of et.
func keyMatches(in Instance, et element.ElementType) bool {
	for _, k := range et.Key() {
		if !in.HasLabel(k.Name()) {
			return false
		}
	}
	return true
}

// minimal drops every element type that has a strict subtype in list.
func (v *Validator) minimal(list []element.ElementType) []element.ElementType {
	var out []element.ElementType
	for _, a := range list {
		below := false
		for _, b := range list {
			if a != b && v.schema.Leq(b, a) {
				below = true
				break
			}
		}
		if !below {
			out = append(out, a)
		}
	}
	return out
}

// resolve selects the element type of scope an instance conforms to. If no type
// conforms, the instance is diagnosed against the closest type whose mandatory
// properties it carries, or against fallback when there is none.
func (v *Validator) resolve(in Instance, scope []element.ElementType, fallback element.ElementType) Result {
	var loose, ok []element.ElementType
	for _, et := range scope {
		if !admits(in, et) {
			continue
		}
		loose = append(loose, et)
		if r := v.check(in, et); r.Err == nil {
			ok = append(ok, et)
		}
	}
	switch len(ok) {
	case 0:
		if len(loose) == 0 {
			if fallback != nil {
				return v.check(in, fallback)
			}
			return Result{Err: ErrNoConformingType}
		}
		// report against the candidate with the most attributes
		best := loose[0]
		for _, c := range loose[1:] {
			if c.Content().Len() > best.Content().Len() {
				best = c
			}
		}
		return v.accept(in, best)
	case 1:
		return v.accept(in, ok[0])
	}

	for _, c := range ok {
		if len(c.Key()) == 0 {
			return Result{Err: &AmbiguousConformanceError{Candidates: ok}}
		}
	}
	var matches []element.ElementType
	for _, c := range ok {
		if keyMatches(in, c) {
			matches = append(matches, c)
		}
	}
	matches = v.minimal(matches)
	if len(matches) != 1 {
		return Result{Err: &AmbiguousKeyMatchError{Candidates: ok, Matches: matches}}
	}
	return v.accept(in, matches[0])
}
