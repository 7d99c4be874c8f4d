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

// Package lattice computes the bounded subtype lattice of a set of content types.
//
// The order is the one of formal concept analysis over attribute sets: X <= Y
// iff every attribute type of Y is an attribute type of X. The lattice always
// contains content.Any (Top) and content.None (Bottom).
//
// A Builder owns lattice membership and serializes mutations. Every mutation
// produces a new immutable Snapshot; snapshots are safe for concurrent use.
package lattice

import (
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/content"
	"github.com/alastai/grasch-lex/internal/mapset"
)

// Handle identifies a member of a lattice. Handles are never reused: a handle
// issued by a Builder is valid in all of its later snapshots.
type Handle int

const (
	// Top is the handle of content.Any.
	Top = Handle(0)
	// Bottom is the handle of content.None.
	Bottom = Handle(1)
	// NoHandle is returned along with errors.
	NoHandle = Handle(-1)
)

var ErrNilContentType = errors.New("lattice: nil content type")

func sortHandles(list []Handle) []Handle {
	slices.Sort(list)
	return list
}

// Builder incrementally computes a lattice. It is safe for concurrent use, but
// callers should still treat schema definition as a single-writer phase.
type Builder struct {
	mu  sync.Mutex
	cur *Snapshot
}

// NewBuilder creates a builder holding only Top and Bottom.
func NewBuilder() *Builder {
	return &Builder{cur: newSnapshot()}
}

// Snapshot returns the current immutable state of the lattice.
func (b *Builder) Snapshot() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur
}

// Register adds a content type to the lattice and returns its handle. A content
// type with the same attribute set as an existing member collapses onto it.
func (b *Builder) Register(ct *content.ContentType) (Handle, error) {
	if ct == nil {
		return NoHandle, ErrNilContentType
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.register(ct)
}

func (b *Builder) register(ct *content.ContentType) (Handle, error) {
	if ct.IsNone() {
		return Bottom, nil
	}
	if h, ok := b.cur.index[ct.ID()]; ok {
		mCollapsed.Inc()
		if clog.V(2) {
			clog.Infof("lattice: %v collapsed onto member %d", ct, h)
		}
		return h, nil
	}
	defer prometheus.NewTimer(mRegisterSeconds).ObserveDuration()
	next, h := b.cur.insert(ct)
	if err := next.checkMember(h); err != nil {
		mViolations.Inc()
		clog.Errorf("lattice: rejecting %v: %v", ct, err)
		return NoHandle, err
	}
	b.cur = next
	mRegistered.Inc()
	mMembers.Set(float64(len(next.members)))
	if clog.V(2) {
		clog.Infof("lattice: registered %v as %d (%d supertypes, %d subtypes)",
			ct, h, next.above[h].Len(), next.below[h].Len())
	}
	return h, nil
}

// Meet returns the greatest lower bound of a and b, registering it if needed.
func (b *Builder) Meet(x, y Handle) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bound, err := b.cur.Meet(x, y)
	if err != nil || bound.Member {
		return bound.Handle, err
	}
	return b.register(bound.Content)
}

// Join returns the least upper bound of a and b, registering it if needed.
func (b *Builder) Join(x, y Handle) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bound, err := b.cur.Join(x, y)
	if err != nil || bound.Member {
		return bound.Handle, err
	}
	return b.register(bound.Content)
}

// rank orders members by decreasing generality: fewer attributes come first.
// Sorting by rank is a linear extension of the reversed subtype order.
type rank struct {
	n  int
	id string
}

func compareRank(a, b rank) int {
	switch {
	case a.n < b.n:
		return -1
	case a.n > b.n:
		return 1
	}
	return strings.Compare(a.id, b.id)
}

func rankOf(ct *content.ContentType) rank {
	if ct.IsNone() {
		// Bottom goes last.
		return rank{n: int(^uint(0) >> 1), id: ct.ID()}
	}
	return rank{n: ct.Len(), id: ct.ID()}
}

// Snapshot is an immutable lattice state.
type Snapshot struct {
	version int
	members []*content.ContentType
	index   map[string]Handle
	ranks   *mapset.Map[rank, Handle]

	// strict transitive order
	above []mapset.Set[Handle]
	below []mapset.Set[Handle]
	// direct covers
	up   []mapset.Set[Handle]
	down []mapset.Set[Handle]
}

func newSnapshot() *Snapshot {
	s := &Snapshot{
		members: []*content.ContentType{content.Any, content.None},
		index:   map[string]Handle{content.Any.ID(): Top, content.None.ID(): Bottom},
		ranks:   mapset.NewMap[rank, Handle](compareRank),
		above:   []mapset.Set[Handle]{mapset.New[Handle](), mapset.New(Top)},
		below:   []mapset.Set[Handle]{mapset.New(Bottom), mapset.New[Handle]()},
		up:      []mapset.Set[Handle]{mapset.New[Handle](), mapset.New(Top)},
		down:    []mapset.Set[Handle]{mapset.New(Bottom), mapset.New[Handle]()},
	}
	s.ranks.Put(rankOf(content.Any), Top)
	s.ranks.Put(rankOf(content.None), Bottom)
	return s
}

// insert returns a copy of s with ct added. Sets shared with s are cloned before
// they are modified, so s stays intact.
func (s *Snapshot) insert(ct *content.ContentType) (*Snapshot, Handle) {
	n := Handle(len(s.members))
	next := &Snapshot{
		version: s.version + 1,
		members: append(append(make([]*content.ContentType, 0, len(s.members)+1), s.members...), ct),
		index:   make(map[string]Handle, len(s.index)+1),
		ranks:   s.ranks.Clone(),
		above:   append(append(make([]mapset.Set[Handle], 0, len(s.above)+1), s.above...), mapset.New[Handle]()),
		below:   append(append(make([]mapset.Set[Handle], 0, len(s.below)+1), s.below...), mapset.New[Handle]()),
		up:      append(append(make([]mapset.Set[Handle], 0, len(s.up)+1), s.up...), mapset.New[Handle]()),
		down:    append(append(make([]mapset.Set[Handle], 0, len(s.down)+1), s.down...), mapset.New[Handle]()),
	}
	for k, v := range s.index {
		next.index[k] = v
	}
	next.index[ct.ID()] = n
	next.ranks.Put(rankOf(ct), n)

	cloned := map[Handle]bool{n: true}
	own := func(h Handle) {
		if !cloned[h] {
			next.above[h] = next.above[h].Clone()
			next.below[h] = next.below[h].Clone()
			cloned[h] = true
		}
	}
	for i, m := range s.members {
		h := Handle(i)
		switch {
		case ct.Leq(m):
			own(h)
			next.above[n].Add(h)
			next.below[h].Add(n)
		case m.Leq(ct):
			own(h)
			next.below[n].Add(h)
			next.above[h].Add(n)
		}
	}
	for h := range cloned {
		next.up[h] = next.covers(next.above[h], next.above)
		next.down[h] = next.covers(next.below[h], next.below)
	}
	return next, n
}

// covers returns the elements of set that are not reachable through another
// element of set.
func (s *Snapshot) covers(set mapset.Set[Handle], rel []mapset.Set[Handle]) mapset.Set[Handle] {
	out := mapset.New[Handle]()
	set.Each(func(u Handle) bool {
		direct := true
		set.Each(func(v Handle) bool {
			if v != u && rel[v].Contains(u) {
				direct = false
			}
			return direct
		})
		if direct {
			out.Add(u)
		}
		return true
	})
	return out
}

// Version returns the number of mutations committed before this snapshot.
func (s *Snapshot) Version() int { return s.version }

// Len returns the number of members, including Top and Bottom.
func (s *Snapshot) Len() int { return len(s.members) }

func (s *Snapshot) valid(h Handle) bool { return h >= 0 && int(h) < len(s.members) }

// Content returns the content type of a member, or nil for an unknown handle.
func (s *Snapshot) Content(h Handle) *content.ContentType {
	if !s.valid(h) {
		return nil
	}
	return s.members[h]
}

// Lookup returns the member with the same attribute set as ct.
func (s *Snapshot) Lookup(ct *content.ContentType) (Handle, bool) {
	h, ok := s.index[ct.ID()]
	return h, ok
}

// Members returns all handles ordered from the most general to the most specific
// member. The order is a linear extension of the subtype order.
func (s *Snapshot) Members() []Handle {
	return s.ranks.Values()
}

// Leq reports whether a is a subtype of b.
func (s *Snapshot) Leq(a, b Handle) bool {
	if !s.valid(a) || !s.valid(b) {
		return false
	}
	return a == b || s.above[a].Contains(b)
}

// SupertypesOf returns the strict supertypes of h, either only the direct ones or
// all of them.
func (s *Snapshot) SupertypesOf(h Handle, transitive bool) []Handle {
	return s.walk(h, s.up, transitive)
}

// SubtypesOf returns the strict subtypes of h, either only the direct ones or all
// of them.
func (s *Snapshot) SubtypesOf(h Handle, transitive bool) []Handle {
	return s.walk(h, s.down, transitive)
}

func (s *Snapshot) walk(h Handle, adj []mapset.Set[Handle], transitive bool) []Handle {
	if !s.valid(h) {
		return nil
	}
	if !transitive {
		return sortHandles(adj[h].ToSlice())
	}
	return sortHandles(s.reach(h, adj).ToSlice())
}

// reach returns every member reachable from h through adj, excluding h.
func (s *Snapshot) reach(h Handle, adj []mapset.Set[Handle]) mapset.Set[Handle] {
	seen := mapset.New[Handle]()
	queue := []Handle{h}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		adj[cur].Each(func(next Handle) bool {
			if seen.Add(next) {
				queue = append(queue, next)
			}
			return true
		})
	}
	return seen
}

// Bound is the result of a meet or join.
type Bound struct {
	// Content is the structural bound.
	Content *content.ContentType
	// Handle is the member equal to Content, if Member is set.
	Handle Handle
	Member bool
}

func (s *Snapshot) bound(ct *content.ContentType) Bound {
	h, ok := s.Lookup(ct)
	if !ok {
		h = NoHandle
	}
	return Bound{Content: ct, Handle: h, Member: ok}
}

// Meet returns the greatest lower bound of a and b: the content type over the
// union of their attribute sets.
func (s *Snapshot) Meet(a, b Handle) (Bound, error) {
	if !s.valid(a) || !s.valid(b) {
		return Bound{Handle: NoHandle}, &InvalidHandleError{Handles: []Handle{a, b}}
	}
	switch {
	case s.Leq(a, b):
		return Bound{Content: s.members[a], Handle: a, Member: true}, nil
	case s.Leq(b, a):
		return Bound{Content: s.members[b], Handle: b, Member: true}, nil
	}
	return s.bound(s.members[a].Union(s.members[b])), nil
}

// Join returns the least upper bound of a and b: the content type over the
// intersection of their attribute sets.
func (s *Snapshot) Join(a, b Handle) (Bound, error) {
	if !s.valid(a) || !s.valid(b) {
		return Bound{Handle: NoHandle}, &InvalidHandleError{Handles: []Handle{a, b}}
	}
	switch {
	case s.Leq(a, b):
		return Bound{Content: s.members[b], Handle: b, Member: true}, nil
	case s.Leq(b, a):
		return Bound{Content: s.members[a], Handle: a, Member: true}, nil
	}
	return s.bound(s.members[a].Intersect(s.members[b])), nil
}
