package lattice

func violation(h, o Handle, reason string) error {
	return &OrderViolationError{Handle: h, Other: o, Reason: reason}
}

// checkMember verifies the order invariants that an insertion of h may affect.
func (s *Snapshot) checkMember(h Handle) error {
	if s.above[Top].Len() != 0 {
		return violation(Top, NoHandle, "top has supertypes")
	}
	if s.below[Bottom].Len() != 0 {
		return violation(Bottom, NoHandle, "bottom has subtypes")
	}
	if s.above[h].Contains(h) || s.below[h].Contains(h) {
		return violation(h, h, "strict order is reflexive")
	}
	if h != Top && !s.above[h].Contains(Top) {
		return violation(h, Top, "member is not below top")
	}
	if h != Bottom && !s.below[h].Contains(Bottom) {
		return violation(h, Bottom, "member is not above bottom")
	}
	var err error
	s.above[h].Each(func(a Handle) bool {
		switch {
		case s.above[a].Contains(h):
			err = violation(h, a, "antisymmetry")
		case !s.below[a].Contains(h):
			err = violation(h, a, "supertype does not list member as subtype")
		case !s.above[a].IsSubset(s.above[h]):
			err = violation(h, a, "transitivity through supertype")
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	s.below[h].Each(func(d Handle) bool {
		switch {
		case !s.above[d].Contains(h):
			err = violation(h, d, "subtype does not list member as supertype")
		case !s.above[h].IsSubset(s.above[d]):
			err = violation(h, d, "transitivity through subtype")
		}
		return err == nil
	})
	return err
}

// Check verifies the whole snapshot: the order agrees with attribute-set
// inclusion, is a partial order, is bounded by Top and Bottom, and transitive
// queries over direct covers agree with it.
func (s *Snapshot) Check() error {
	seen := make(map[string]Handle, len(s.members))
	for i, m := range s.members {
		h := Handle(i)
		if prev, ok := seen[m.ID()]; ok {
			return violation(prev, h, "duplicate members")
		}
		seen[m.ID()] = h
		if err := s.checkMember(h); err != nil {
			return err
		}
		for j, o := range s.members {
			g := Handle(j)
			if h == g {
				continue
			}
			if m.Leq(o) != s.above[h].Contains(g) {
				return violation(h, g, "order disagrees with attribute inclusion")
			}
			if s.Leq(h, g) && s.Leq(g, h) {
				return violation(h, g, "antisymmetry")
			}
		}
		if !s.reach(h, s.up).Equal(s.above[h]) {
			return violation(h, NoHandle, "supertype closure disagrees with direct covers")
		}
		if !s.reach(h, s.down).Equal(s.below[h]) {
			return violation(h, NoHandle, "subtype closure disagrees with direct covers")
		}
	}
	return nil
}
